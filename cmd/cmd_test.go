package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ariebrainware/colposcopy-api/config"
	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	migrate, _, err := rootCmd.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", migrate.Name())
}

func TestNewUploadStore(t *testing.T) {
	ctx := context.Background()

	s, err := newUploadStore(ctx, &config.Config{UploadBackend: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStore{}, s)

	s, err = newUploadStore(ctx, &config.Config{UploadBackend: "s3", S3Bucket: "exam-images", S3Region: "us-east-1"})
	require.NoError(t, err)
	assert.IsType(t, &storage.S3Store{}, s)

	_, err = newUploadStore(ctx, &config.Config{UploadBackend: "s3"})
	assert.Error(t, err)

	_, err = newUploadStore(ctx, &config.Config{UploadBackend: "ftp"})
	assert.ErrorContains(t, err, "unsupported UPLOADBACKEND")
}

func TestMigrateCommands_TestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")
	config.ResetConfigForTest()
	t.Cleanup(config.ResetConfigForTest)

	var out bytes.Buffer
	up := newMigrateUpCommand()
	up.SetOut(&out)
	up.SetContext(context.Background())
	require.NoError(t, up.RunE(up, nil))
	assert.Contains(t, out.String(), "Applied 6 migration(s).")

	out.Reset()
	status := newMigrateStatusCommand()
	status.SetOut(&out)
	status.SetContext(context.Background())
	require.NoError(t, status.RunE(status, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "VERSION")
	assert.Contains(t, lines[1], "001_create_patients.sql")
}
