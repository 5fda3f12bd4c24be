// Package config loads runtime configuration for the catalog client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the catalog service
//	-t int      request timeout in seconds (0 disables the timeout)
//	-l string   log level: debug, info, warn, error
//	-y          answer yes to confirmations without prompting
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:5000",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "auto_confirm": false
//	}
package config
