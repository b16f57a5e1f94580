// Package server provides the HTTP facade over the trust engines.
//
// This package implements the HTTP server in front of the token service,
// authorization engine, boundary engine, and policy issuance engine. It
// uses gorilla/mux for routing and provides middleware for bearer
// credential authentication.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, tokens, authzEngine, boundaryEngine, policyEngine)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - POST /tokens/refresh - exchange a refresh token for an access token
//   - POST /authz/check - permission check
//   - POST /boundary/enforce - team boundary decision
//   - POST /devices/{id}/policy - signed device policy issuance
//   - GET /policy/public-key - policy verification key
//   - GET /whoami - credential introspection
//   - GET /health - liveness and database reachability
//   - GET /metrics - Prometheus metrics (when enabled)
package server
