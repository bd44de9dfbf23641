package kvstore

import (
	"context"
	"database/sql"
	"log"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/daykeeper/internal/common"
	sqlitemigrations "github.com/dmitrijs2005/daykeeper/internal/kvstore/migrations/sqlite"
)

// SQLiteStore is the default durable backend: a single kv table in a local
// SQLite database, the closest analog to a mobile device key-value store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already opened database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// runSQLiteMigrations applies the embedded kv schema via goose.
func runSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(sqlitemigrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitSQLite opens (or creates) the database at dsn, applies migrations,
// and returns a ready Store together with the handle for closing.
func InitSQLite(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, common.NewStorageError("open", "", err)
	}

	if err := runSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, common.NewStorageError("migrate", "", err)
	}

	return NewSQLiteStore(db), db, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, common.NewStorageError("get", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return common.NewStorageError("set", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return common.NewStorageError("remove", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetAllKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv`)
	if err != nil {
		return nil, common.NewStorageError("keys", "", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, common.NewStorageError("keys", "", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("keys", "", err)
	}
	return keys, nil
}

func (s *SQLiteStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query, args := inClauseQuery(`SELECT key, value FROM kv WHERE key IN`, keys)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewStorageError("getmany", "", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		var v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, common.NewStorageError("getmany", "", err)
		}
		result[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewStorageError("getmany", "", err)
	}
	return result, nil
}
