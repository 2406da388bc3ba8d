// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: ADMIN_API_URL overrides the API base URL.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the admin API (without /api)
//	-t int      request timeout (seconds)
//	-s string   path of the local session database
//	-n int      rows per page in list views
//	-v          debug logging
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1.5s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "https://admin.example.com",
//	  "request_timeout": "30s",
//	  "session_db_path": "session.db",
//	  "redirect_delay": "1.5s",
//	  "auth_check_attempts": 5,
//	  "auth_check_interval": "500ms",
//	  "page_size": 20,
//	  "debug": false
//	}
package config
