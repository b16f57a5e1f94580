package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/token"
)

// RefreshRequest is the body of POST /tokens/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the newly issued access token.
type RefreshResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RegisterTokensEndpoints registers the token exchange endpoints.
// Refresh is unauthenticated; it carries its own credential.
func RegisterTokensEndpoints(s *server.Server) {
	s.Router.HandleFunc("/tokens/refresh", handleRefresh(s.Tokens)).Methods("POST")
}

func handleRefresh(tokens *token.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "refresh_token is required")
			return
		}

		issued, err := tokens.RefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			// Session-gone and invalid-credential collapse into one
			// message; the distinction is not for callers.
			writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		writeJSON(w, http.StatusOK, RefreshResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresAt:   issued.ExpiresAt,
		})
	}
}
