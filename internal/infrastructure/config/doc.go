// Package config provides 12-factor configuration management for the Linkup backend.
//
// Configuration is read from an optional .env file and then from environment
// variables, with defaults for local development. The loaded struct is
// validated before use so a bad value fails startup instead of surfacing later.
//
// Configuration Sections:
//   - Server: HTTP listener (PORT falls back to 5000)
//   - Database: MongoDB connection or the in-memory driver
//   - Auth: JWT secret, token lifetime and cookie settings
//   - CORS: the HTTP and realtime origins allowed with credentials
//   - Realtime: websocket limits and keepalive interval
//   - Media: upload directory and size limit
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
package config
