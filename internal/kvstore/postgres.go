package kvstore

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/daykeeper/internal/common"
	pgmigrations "github.com/dmitrijs2005/daykeeper/internal/kvstore/migrations/postgres"
)

// PostgresStore keeps the kv table in PostgreSQL, for installations that
// want the device store replicated to a server-grade database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already opened database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// gooseUpContext is a seam for testing migration failures.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// runPostgresMigrations applies the embedded kv schema via goose.
func runPostgresMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(pgmigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// InitPostgres connects using the pgx stdlib driver, applies migrations,
// and returns a ready Store together with the handle for closing.
func InitPostgres(ctx context.Context, dsn string) (*PostgresStore, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, common.NewStorageError("open", "", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, common.NewStorageError("ping", "", err)
	}

	if err := runPostgresMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, common.NewStorageError("migrate", "", err)
	}

	return NewPostgresStore(db), db, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, common.NewStorageError("get", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return common.NewStorageError("set", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, key)
	if err != nil {
		return common.NewStorageError("remove", key, err)
	}
	return nil
}

func (s *PostgresStore) GetAllKeys(ctx context.Context) ([]string, error) {
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

func (s *PostgresStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query, args := inClauseQueryPg(`SELECT key, value FROM kv WHERE key IN`, keys)
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
