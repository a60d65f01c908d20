package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sedaily/internal/flagx"
	"github.com/dmitrijs2005/sedaily/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	Storage          string         `json:"storage"`
	DatabasePath     string         `json:"database_path"`
	RedisAddr        string         `json:"redis_addr"`
	CacheDir         string         `json:"cache_dir"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	OperationTimeout timex.Duration `json:"operation_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
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

	overlay(&cfg.Storage, jc.Storage)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.RedisAddr, jc.RedisAddr)
	overlay(&cfg.CacheDir, jc.CacheDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	if jc.OperationTimeout.Duration > 0 {
		cfg.OperationTimeout = jc.OperationTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
