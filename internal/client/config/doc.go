// Package config loads runtime configuration for the planner CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   SQLite database file
//	-q int      key-value storage budget (bytes)
//	-p string   reel proxy base URL
//	-t int      reel request timeout (minutes)
//
// # JSON schema
//
//	{
//	  "database_dsn": "personadesk.db",
//	  "kv_budget": 5242880,
//	  "proxy_endpoint": "http://127.0.0.1:8080",
//	  "reel_timeout": "10m"
//	}
package config
