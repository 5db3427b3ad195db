// Package storetest builds small reference SNP databases for tests.
package storetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SNP is one reference row.
type SNP struct {
	Chr  string
	RsID string
	Pos  int64
	A1   string
	A2   string
}

// NewReferenceDB writes rows into table in a fresh SQLite file under
// t.TempDir and returns the file path. The handle used for seeding is closed
// before returning, so callers can reopen the file read-only.
func NewReferenceDB(t testing.TB, table string, rows ...SNP) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reference.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE "` + table + `" (
  chr  TEXT NOT NULL,
  rsID TEXT NOT NULL,
  pos  INTEGER NOT NULL,
  A1   TEXT NOT NULL,
  A2   TEXT NOT NULL
)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE INDEX idx_` + table + `_chr_pos ON "` + table + `"(chr, pos)`)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	stmt, err := tx.Prepare(`INSERT INTO "` + table + `" (chr, rsID, pos, A1, A2) VALUES (?, ?, ?, ?, ?)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := stmt.Exec(r.Chr, r.RsID, r.Pos, r.A1, r.A2)
		require.NoError(t, err)
	}
	require.NoError(t, stmt.Close())
	require.NoError(t, tx.Commit())
	return path
}

// Exec runs raw statements against the database at path, for tests that need
// a table shape NewReferenceDB does not produce.
func Exec(t testing.TB, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
}
