package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrationFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"002_create_messages.sql", "001_create_users.sql", "README.md", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755))

	filenames, err := listMigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_users.sql", "002_create_messages.sql"}, filenames)
}

func TestListMigrationFilesMissingDir(t *testing.T) {
	_, err := listMigrationFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
