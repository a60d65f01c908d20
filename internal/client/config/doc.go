// Package config loads runtime configuration for the sedaily CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "storage": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "cache_dir": "cache",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "operation_timeout": "3s"
//	}
//
// Environment variables are not read.
package config
