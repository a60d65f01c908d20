package config

import "time"

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds runtime settings for the sedaily CLI.
//
// Fields:
//   - Storage: metadata backend, one of StorageSQLite, StorageRedis, StorageMemory.
//   - DatabasePath: SQLite file used by StorageSQLite.
//   - RedisAddr: host:port used by StorageRedis.
//   - CacheDir: root directory of the podcast disk cache.
//   - LogLevel / LogFormat: see logging.New.
//   - OperationTimeout: upper bound for a single storage call.
type Config struct {
	Storage          string
	DatabasePath     string
	RedisAddr        string
	CacheDir         string
	LogLevel         string
	LogFormat        string
	OperationTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQLite
	c.DatabasePath = "session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.CacheDir = "cache"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.OperationTimeout = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
