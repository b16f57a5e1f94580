package endpoints

import (
	"github.com/fieldgate/fieldgate/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterTokensEndpoints(srv)
	RegisterAuthzEndpoints(srv)
	RegisterBoundaryEndpoints(srv)
	RegisterPolicyEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterStatusEndpoints(srv)
}
