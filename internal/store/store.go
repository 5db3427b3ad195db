package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// ErrUnknownDriver is returned by Open for a driver name other than
// DriverCgo or DriverPure.
var ErrUnknownDriver = errors.New("unknown sqlite driver")

// Store is a read-only handle on a reference SNP database.
type Store struct {
	db     *sql.DB
	driver string
	path   string
}

// Open opens the SQLite database at dbPath read-only. The file must already
// exist; Open never creates one.
func Open(driver, dbPath string) (*Store, error) {
	dsn, err := readOnlyDSN(driver, dbPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("stat database: %s is a directory", dbPath)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db, driver: driver, path: dbPath}, nil
}

func readOnlyDSN(driver, dbPath string) (string, error) {
	var query string
	switch driver {
	case DriverCgo:
		query = "mode=ro&_query_only=true&_busy_timeout=30000"
	case DriverPure:
		query = "mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(30000)"
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownDriver, driver, DriverCgo, DriverPure)
	}
	// The path is percent-escaped so '?', '#' and '%' in file names stay part
	// of the path instead of starting the URI query or fragment.
	u := url.URL{Scheme: "file", OmitHost: true, Path: dbPath, RawQuery: query}
	return u.String(), nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB. It is safe for concurrent reads.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the database/sql driver name the Store was opened with.
func (s *Store) Driver() string { return s.driver }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// TableColumns returns the column names of table, or nil when the table
// does not exist. table must already be a validated identifier.
func (s *Store) TableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table info %s: rows: %w", table, err)
	}
	return cols, nil
}

// MissingColumns reports which of want are absent from table. Column names
// compare case-insensitively, as SQLite does.
func (s *Store) MissingColumns(ctx context.Context, table string, want []string) ([]string, error) {
	have, err := s.TableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(have))
	for _, c := range have {
		set[strings.ToLower(c)] = true
	}
	var missing []string
	for _, c := range want {
		if !set[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

// CountRows returns the number of rows in table. table must already be a
// validated identifier.
func (s *Store) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "`+table+`"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
