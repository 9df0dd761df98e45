package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/stint/internal/log"
)

// MemoryPath opens an in-memory database, used by tests and throwaway
// runs.
const MemoryPath = ":memory:"

// Store owns the database connection and hands out the repositories
// bound to it.
type Store struct {
	conn *sql.DB

	customers  *customerRepo
	projects   *projectRepo
	activities *activityRepo
	entries    *entryRepo
}

// Open opens (creating if needed) the database at path and brings its
// schema up to date. The parent directory is created with 0700. When an
// existing database file is present, a pre-migration copy is written
// alongside it as path+".bak".
func Open(path string) (*Store, error) {
	memory := path == MemoryPath

	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			if err := backupFile(path, path+".bak"); err != nil {
				return nil, fmt.Errorf("failed to back up database: %w", err)
			}
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	if memory {
		dsn = "file::memory:?_pragma=foreign_keys(on)"
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// In-memory databases are per-connection; keep the pool at one
		// so every query sees the same schema.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Debug(log.CatDB, "database opened", "path", path)

	return &Store{
		conn:       conn,
		customers:  newCustomerRepo(conn),
		projects:   newProjectRepo(conn),
		activities: newActivityRepo(conn),
		entries:    newEntryRepo(conn),
	}, nil
}

// backupFile copies src to dst, replacing any previous backup.
func backupFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (s *Store) Connection() *sql.DB {
	return s.conn
}

// Customers returns the customer repository.
func (s *Store) Customers() CustomerRepo {
	return s.customers
}

// Projects returns the project repository.
func (s *Store) Projects() ProjectRepo {
	return s.projects
}

// Activities returns the activity repository.
func (s *Store) Activities() ActivityRepo {
	return s.activities
}

// Entries returns the entry repository.
func (s *Store) Entries() EntryRepo {
	return s.entries
}
