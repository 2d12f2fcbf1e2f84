package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectLibSQL   Dialect = "libsql"
	DialectPostgres Dialect = "postgres"
)

// ErrDriverUnavailable is returned when the requested driver was not
// compiled into this binary.
var ErrDriverUnavailable = errors.New("database driver not available in this build")

// Config selects and locates the backing store.
type Config struct {
	Driver    string
	DSN       string
	AuthToken string
}

// Store is an open database together with its dialect.
type Store struct {
	*sql.DB
	Dialect Dialect
}

// Conn returns a DBTX over the pool that speaks the store's placeholder
// syntax. Repositories always write "?" placeholders.
func (s *Store) Conn() DBTX {
	return Rebind(s.Dialect, s.DB)
}

// UnitOfWork returns a transactional boundary bound to this store.
func (s *Store) UnitOfWork() UnitOfWork {
	return NewUnitOfWork(s.DB, s.Dialect)
}

// Open connects to the configured driver and runs migrations.
func Open(cfg Config) (*Store, error) {
	switch Dialect(cfg.Driver) {
	case DialectSQLite, "":
		database, err := OpenDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectSQLite}, nil
	case DialectLibSQL:
		database, err := openLibSQL(cfg.DSN, cfg.AuthToken)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectLibSQL}, nil
	case DialectPostgres:
		database, err := openPostgres(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectPostgres}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if memory {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func openLibSQL(dsn, authToken string) (*sql.DB, error) {
	if !libsqlAvailable {
		return nil, fmt.Errorf("libsql: %w (rebuild with CGO_ENABLED=1)", ErrDriverUnavailable)
	}

	connStr := dsn
	if authToken != "" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		connStr = dsn + sep + "authToken=" + authToken
	}
	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening libsql database: %w", err)
	}

	// Turso closes idle streams aggressively; keep no idle connections.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging libsql database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
