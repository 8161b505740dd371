package prefs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps preferences in a shared SQLite database, one row per
// namespace and key.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	namespace, err := validNamespace(namespace)
	if err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create preferences dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

func migrate(db *sql.DB) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, sub)
	if err != nil {
		return fmt.Errorf("init preferences migrations: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate preferences db: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	key, err := validKey(key)
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRow(
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(key, value string) error {
	key, err := validKey(key)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO preferences (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.namespace, key, value, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	key, err := validKey(key)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(`DELETE FROM preferences WHERE namespace = ? AND key = ?`, s.namespace, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
