package endpoints

import (
	"net/http"
	"time"

	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID    string    `json:"user_id"`
	DeviceID  string    `json:"device_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	TeamID    string    `json:"team_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	TokenIAT  int64     `json:"token_iat,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens, s.Config)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		response := WhoamiResponse{
			UserID:    id.UserID,
			DeviceID:  id.DeviceID,
			SessionID: id.SessionID,
			TeamID:    id.TeamID,
			ClientIP:  id.ClientIP(),
			ExpiresAt: id.ExpiresAt,
		}
		if !id.IssuedAt.IsZero() {
			response.TokenIAT = id.IssuedAt.Unix()
		}

		writeJSON(w, http.StatusOK, response)
	}
}
