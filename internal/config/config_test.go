package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, BackendSQLite, c.StorageBackend)
	assert.Equal(t, "daykeeper.db", c.SQLitePath)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, 0, c.RedisDB)
	assert.Equal(t, 3*time.Second, c.RedisTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, 3*time.Second, cfg.RedisTimeout)
}

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-b", "redis", "-r", "redis.local:6380", "-n", "2", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "redis.local:6380", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.RedisTimeout)
	assert.Equal(t, "daykeeper.db", cfg.SQLitePath, "untouched fields keep defaults")
}
