package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	valid := []string{"3f2a.png", "abc", "with-dash_and.dots.jpeg"}
	for _, key := range valid {
		assert.NoError(t, ValidateKey(key), key)
	}

	invalid := []string{"", ".", "..", "../etc/passwd", "a/b.png", `a\b.png`, "/abs.png"}
	for _, key := range invalid {
		assert.True(t, errors.Is(ValidateKey(key), ErrInvalidKey), key)
	}
}
