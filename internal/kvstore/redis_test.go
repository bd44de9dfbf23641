package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := InitRedis(context.Background(), RedisOptions{
		Addr:    mr.Addr(),
		Timeout: time.Second,
	})
	require.NoError(t, err)
	return store
}

func TestRedisStore_Contract(t *testing.T) {
	testStoreContract(t, setupRedis(t))
}

func TestInitRedis_BadAddr(t *testing.T) {
	_, err := InitRedis(context.Background(), RedisOptions{
		Addr:    "127.0.0.1:0",
		Timeout: 200 * time.Millisecond,
	})
	require.Error(t, err)
}
