// Package main provides fieldgatectl, the CLI for the Fieldgate
// authorization and credential-trust server.
//
// Fieldgate is the trust core of a multi-tenant field-operations
// platform. It resolves role-hierarchy permissions, issues and revokes
// signed session credentials, signs device policy documents, and
// enforces team and region boundaries.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/authz: permission resolution and the two-tier cache
//   - pkg/token: session credential issuance, verification, revocation
//   - pkg/policy: device policy document assembly and signing
//   - pkg/boundary: team/region boundary enforcement
//   - pkg/signer: cryptographic operations (RSA signing, AES-GCM at rest)
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Generate a data key for key-at-rest encryption
//	fieldgatectl data-key generate > data_key
//	export FIELDGATE_DATA_KEY=$(cat data_key)
//
//	# Run database migrations
//	fieldgatectl db migrate
//
//	# Generate the policy signing key
//	fieldgatectl signing-key generate
//
//	# Seed the role hierarchy and permission matrix
//	fieldgatectl role seed roles.yml
//
//	# Start the server
//	fieldgatectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - FIELDGATE_DATA_KEY: Base64-encoded 256-bit key encrypting signing keys at rest
//   - AUDIT_DATABASE_URL: optional PostgreSQL connection string for audit persistence
//   - FIELDGATE_AUDIT_ENABLED: set to "false" to disable audit logging
//   - FIELDGATE_LOG_LEVEL: log level (debug enables SQL logging)
//   - FIELDGATE_CONFIG_PATH: configuration directory (default /etc/fieldgate/config)
package main
