package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultPath = "./data/depositrecon.db"

// Database holds the GORM database instance
type Database struct {
	conn         *gorm.DB
	logger       *slog.Logger
	maxOpenConns int
}

// Option is the functional options pattern for Database
type Option func(*Database) error

// New creates a new Database instance with options
func New(opts ...Option) (*Database, error) {
	db := &Database{
		logger:       slog.Default(),
		maxOpenConns: 1,
	}
	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}
	if db.conn == nil {
		return nil, fmt.Errorf("database path not configured")
	}
	return db, nil
}

func WithLogger(l *slog.Logger) Option {
	return func(db *Database) error {
		if l != nil {
			db.logger = l
		}
		return nil
	}
}

// WithMaxOpenConns caps the pool. SQLite allows a single writer, so the
// default of one connection serialises concurrent upserts instead of
// failing them with "database is locked". In-memory databases are per
// connection and always get one.
func WithMaxOpenConns(n int) Option {
	return func(db *Database) error {
		db.maxOpenConns = n
		return nil
	}
}

// WithPath opens the SQLite database at path, creating its directory.
// Options that tune the pool must come before it.
func WithPath(path string) Option {
	return func(db *Database) error {
		if path == "" {
			path = DefaultPath
		}

		if isMemory(path) {
			db.maxOpenConns = 1
		} else {
			dir := filepath.Dir(path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory %s: %w", dir, err)
			}

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("failed to stat data directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("data path %s is not a directory", dir)
			}

			testFile := filepath.Join(dir, ".write_test")
			if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
				return fmt.Errorf("data directory %s is not writable: %w", dir, err)
			}
			os.Remove(testFile)
		}

		conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w (path: %s)", err, path)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql handle: %w", err)
		}
		if db.maxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(db.maxOpenConns)
		}

		db.conn = conn
		db.logger.Info("database connected", "path", path)
		return nil
	}
}

// Get returns the underlying GORM database instance
func (d *Database) Get() *gorm.DB {
	return d.conn
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.conn == nil {
		return nil
	}
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, "file::memory:")
}
