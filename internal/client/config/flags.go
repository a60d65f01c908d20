package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/sedaily/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   storage backend: sqlite, redis or memory
//	-d string   SQLite database path
//	-r string   Redis address
//	-k string   disk cache directory
//	-l string   log level
//	-f string   log format: text or json
//	-t int      storage operation timeout in seconds
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// components (-c/-config) do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-r", "-k", "-l", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite, redis, memory)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.CacheDir, "k", cfg.CacheDir, "disk cache directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json)")
	timeout := fs.Int("t", int(cfg.OperationTimeout.Seconds()), "storage operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OperationTimeout = time.Duration(*timeout) * time.Second
}
