package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, db, err := InitSQLite(context.Background(), "file:kvtest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	testStoreContract(t, setupSQLite(t))
}

func TestInitSQLite_CreatesSchema(t *testing.T) {
	store := setupSQLite(t)

	var cnt int
	err := store.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&cnt)
	require.NoError(t, err)
	require.Zero(t, cnt)
}
