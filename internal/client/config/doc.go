// Package config loads runtime configuration for the todosync CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the backend gRPC endpoint
//	-f string     local cache database file
//	-t duration   per-request timeout (e.g. 5s)
//	-i int        online status check interval (seconds)
//	-v            verbose logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so durations can be either a string
// like "5s" or integer nanoseconds. Keys left out keep their earlier value:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "cache_dsn": "todosync.db",
//	  "request_timeout": "5s",
//	  "online_check_interval": "3s",
//	  "verbose": false
//	}
package config
