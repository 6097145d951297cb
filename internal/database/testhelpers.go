package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// OpenTestDB opens a fresh SQLite database in a per-test temp directory and
// closes it when the test ends.
func OpenTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "saltbot_test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
