package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jward/rsmatch/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, driver string, rows ...storetest.SNP) *Store {
	t.Helper()
	path := storetest.NewReferenceDB(t, "snp", rows...)
	s, err := Open(driver, path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var drivers = []string{DriverCgo, DriverPure}

// =============================================================================
// Open
// =============================================================================

func TestOpen_BothDrivers(t *testing.T) {
	t.Parallel()
	for _, d := range drivers {
		t.Run(d, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t, d, storetest.SNP{Chr: "1", RsID: "rs1", Pos: 10, A1: "A", A2: "G"})
			assert.Equal(t, d, s.Driver())

			n, err := s.CountRows(context.Background(), "snp")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nope.db")
	_, err := Open(DriverCgo, path)
	require.Error(t, err)

	// Open must not create the file as a side effect.
	_, err = Open(DriverCgo, path)
	require.Error(t, err)
}

func TestOpen_PathWithURIMetacharacters(t *testing.T) {
	t.Parallel()
	for _, d := range drivers {
		t.Run(d, func(t *testing.T) {
			t.Parallel()
			src := storetest.NewReferenceDB(t, "snp", storetest.SNP{Chr: "1", RsID: "rs1", Pos: 10, A1: "A", A2: "G"})
			dir := t.TempDir()
			path := filepath.Join(dir, "ref#1?x=%41.db")
			require.NoError(t, os.Rename(src, path))

			s, err := Open(d, path)
			require.NoError(t, err)
			defer s.Close()

			n, err := s.CountRows(context.Background(), "snp")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1, "no stray database file may be created")
			assert.Equal(t, filepath.Base(path), entries[0].Name())
		})
	}
}

func TestReadOnlyDSN_EscapesPath(t *testing.T) {
	t.Parallel()
	dsn, err := readOnlyDSN(DriverCgo, "/data/ref#1?.db")
	require.NoError(t, err)
	assert.Equal(t, "file:/data/ref%231%3F.db?mode=ro&_query_only=true&_busy_timeout=30000", dsn)
}

func TestOpen_Directory(t *testing.T) {
	t.Parallel()
	_, err := Open(DriverCgo, t.TempDir())
	require.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()
	path := storetest.NewReferenceDB(t, "snp")
	_, err := Open("postgres", path)
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_ReadOnly(t *testing.T) {
	t.Parallel()
	for _, d := range drivers {
		t.Run(d, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t, d)
			_, err := s.DB().Exec(`INSERT INTO snp (chr, rsID, pos, A1, A2) VALUES ('1', 'rs9', 1, 'A', 'C')`)
			require.Error(t, err)
		})
	}
}

// =============================================================================
// Introspection
// =============================================================================

func TestTableColumns(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, DriverCgo)

	cols, err := s.TableColumns(context.Background(), "snp")
	require.NoError(t, err)
	assert.Equal(t, []string{"chr", "rsID", "pos", "A1", "A2"}, cols)

	cols, err = s.TableColumns(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	t.Parallel()
	path := storetest.NewReferenceDB(t, "snp")
	storetest.Exec(t, path, `CREATE TABLE partial (CHR TEXT, rsid TEXT, pos INTEGER)`)
	s, err := Open(DriverCgo, path)
	require.NoError(t, err)
	defer s.Close()

	missing, err := s.MissingColumns(context.Background(), "partial", []string{"chr", "rsID", "pos", "A1", "A2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, missing)

	missing, err = s.MissingColumns(context.Background(), "snp", []string{"chr", "rsID", "pos", "A1", "A2"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// =============================================================================
// ScanAll
// =============================================================================

func TestScanAll_GenericValues(t *testing.T) {
	t.Parallel()
	for _, d := range drivers {
		t.Run(d, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t, d,
				storetest.SNP{Chr: "1", RsID: "rs1", Pos: 10, A1: "A", A2: "G"},
				storetest.SNP{Chr: "X", RsID: "rs2", Pos: 20, A1: "T", A2: "C"},
			)
			rows, err := s.DB().Query(`SELECT chr, rsID, pos, A1, A2 FROM snp ORDER BY pos`)
			require.NoError(t, err)

			vals, err := ScanAll(rows)
			require.NoError(t, err)
			require.Len(t, vals, 2)
			require.Len(t, vals[0], 5)
			assert.EqualValues(t, 10, vals[0][2])
			assert.EqualValues(t, 20, vals[1][2])
		})
	}
}

func TestScanAll_Empty(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, DriverCgo)
	rows, err := s.DB().Query(`SELECT chr FROM snp`)
	require.NoError(t, err)

	vals, err := ScanAll(rows)
	require.NoError(t, err)
	assert.Empty(t, vals)
}
