package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/flagx"
	"github.com/dmitrijs2005/daykeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	StorageBackend string         `json:"storage_backend"`
	SQLitePath     string         `json:"sqlite_path"`
	PostgresDSN    string         `json:"postgres_dsn"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
	RedisDB        int            `json:"redis_db"`
	RedisTimeout   timex.Duration `json:"redis_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.StorageBackend = jc.StorageBackend
	cfg.SQLitePath = jc.SQLitePath
	cfg.PostgresDSN = jc.PostgresDSN
	cfg.RedisAddr = jc.RedisAddr
	cfg.RedisPassword = jc.RedisPassword
	cfg.RedisDB = jc.RedisDB
	cfg.RedisTimeout = time.Duration(jc.RedisTimeout.Duration)
}
