// Package config provides 12-factor configuration management for the WebDesk backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Store: Key-value backend (memory, file, sqlite, redis)
//   - Redis: Redis connection used by the redis backend
//   - Shell: Window cascade, size floor, power delay, list caps
//   - Apps: Optional app definitions file (yaml, toml, json)
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - STORE_BACKEND, STORE_PATH, STORE_COMPRESS, STORE_CACHE
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_PREFIX
//   - POWER_DELAY, RECENT_LIMIT, MAIL_LIMIT, APPS_FILE
package config
