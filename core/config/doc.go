// Package config provides configuration management for sheet-sync.
//
// It uses Viper for loading configuration from a .env file, an optional
// config.yaml and environment variables, with defaults declared on the
// partial config structs through `default:"..."` tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port and API key
//   - Log: level, format and optional rotating file
//   - Table: source (csv, sql), path and table name
//   - Database: connection for SQL-hosted tables (mysql, sqlite)
//   - Storage: S3/MinIO settings for the objectstore backend
//   - Credentials: service account for the firestore backend
//   - Sync: backend, collection override and retry policy
//
// Environment variables map to nested keys by replacing "." with "_",
// e.g. SYNC_MAX_RETRIES -> sync.max_retries.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Backend)
package config
