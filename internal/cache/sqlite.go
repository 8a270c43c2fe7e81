package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLite persists entries across runs and keeps hot entries in an LRU tier.
type SQLite struct {
	db  *sql.DB
	mem *Memory
}

// OpenSQLite opens (creating if needed) the cache database at path and
// applies pending migrations.
func OpenSQLite(path string, size int) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir cache dir: %w", err)
	}
	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	db, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	mem, err := NewMemory(size)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, mem: mem}, nil
}

func open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// migrateUp runs on its own connection: the migrate sqlite3 driver closes the
// handle it was given.
func migrateUp(path string) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = driver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (Entry, bool, error) {
	if e, ok, _ := s.mem.Get(ctx, key); ok {
		return e, true, nil
	}
	var (
		e        Entry
		storedAt int64
		data     []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, operation, data, stored_at FROM responses WHERE key = ?`, key,
	).Scan(&e.Key, &e.Operation, &data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	e.Data = data
	e.StoredAt = time.Unix(storedAt, 0).UTC()
	_ = s.mem.Put(ctx, e)
	return e, true, nil
}

func (s *SQLite) Put(ctx context.Context, e Entry) error {
	e.StoredAt = e.StoredAt.UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (key, operation, data, stored_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET operation = excluded.operation, data = excluded.data, stored_at = excluded.stored_at`,
		e.Key, e.Operation, []byte(e.Data), e.StoredAt.Unix())
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return s.mem.Put(ctx, e)
}

func (s *SQLite) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM responses`); err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	return s.mem.Purge(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
