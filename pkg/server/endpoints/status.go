package endpoints

import (
	"net/http"

	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/server"
)

// HealthResponse represents the response from /health.
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// RegisterStatusEndpoints registers the health and metrics endpoints.
// Both are unauthenticated; metrics can be disabled in configuration.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/health", handleHealth(s)).Methods("GET")

	if s.Config == nil || s.Config.MetricsEnabled {
		s.Router.Handle("/metrics", metrics.Handler()).Methods("GET")
	}
}

func handleHealth(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{OK: true, Database: "ok"}
		status := http.StatusOK

		if s.DB != nil {
			sqlDB, err := s.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(r.Context())
			}
			if err != nil {
				response.OK = false
				response.Database = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, response)
	}
}
