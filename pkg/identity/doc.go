// Package identity provides authenticated identity management for requests.
//
// This package separates the concept of an authenticated identity from the
// raw credential parsing. An Identity combines credential claims (user,
// device, session, team) with request-specific context (client IP, request
// id).
//
// # Basic Usage
//
//	// Create identity from verified claims
//	id := identity.FromClaims(verification.Payload)
//
//	// Add request context
//	id.WithRemoteIP(clientIP).
//	   WithRequestID(requestID)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// # Identity vs Credential
//
// The token package handles signing and verifying the raw session
// credential. The identity package builds on that to provide the richer
// per-request view the authorization and boundary engines consume.
package identity
