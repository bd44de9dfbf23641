package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend: memory, sqlite, postgres or redis
//	-f string   path to the SQLite database file
//	-d string   PostgreSQL DSN
//	-r string   Redis address (host:port)
//	-p string   Redis password
//	-n int      Redis database number
//	-t int      Redis operation timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-f", "-d", "-r", "-p", "-n", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (memory, sqlite, postgres, redis)")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "path to the SQLite database file")
	fs.StringVar(&cfg.PostgresDSN, "d", cfg.PostgresDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address (host:port)")
	fs.StringVar(&cfg.RedisPassword, "p", cfg.RedisPassword, "Redis password")
	fs.IntVar(&cfg.RedisDB, "n", cfg.RedisDB, "Redis database number")
	redisTimeout := fs.Int("t", int(cfg.RedisTimeout.Seconds()), "Redis operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RedisTimeout = time.Duration(*redisTimeout) * time.Second
}
