// Package config provides configuration management for Fieldgate.
//
// This package handles loading and validating server configuration from
// environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - FIELDGATE_ACCESS_TOKEN_TTL: Access token lifetime in seconds
//   - FIELDGATE_DATA_KEY: Encryption key for signing keys at rest
//   - FIELDGATE_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection
//   - FIELDGATE_LISTEN_ADDRESS: Server bind address
package config
