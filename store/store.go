// Package store is the data-access layer: one function per operation on
// patients, exams and appointments, each running a single statement or a
// small fixed set of statements against the given *gorm.DB.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested id has no row.
var ErrNotFound = errors.New("record not found")

const (
	// DefaultLimit is the page size used when a caller passes a non-positive limit.
	DefaultLimit = 100
	// MaxLimit caps page sizes.
	MaxLimit = 1000
)

func paginate(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
