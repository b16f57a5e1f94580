package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fieldgate/fieldgate/pkg/audit"
	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/policy"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/server/middleware"
)

// RegisterPolicyEndpoints registers device policy issuance behind
// bearer auth and the public verification key without it.
func RegisterPolicyEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens, s.Config)

	devicesRouter := s.Router.PathPrefix("/devices").Subrouter()
	devicesRouter.Use(auth.Middleware)
	devicesRouter.HandleFunc("/{id}/policy", handleIssuePolicy(s.Policy)).Methods("POST")
	devicesRouter.HandleFunc("/{id}/policy/issues", handleRecentIssues(s.Policy)).Methods("GET")

	// Devices verify documents offline; the key is public.
	s.Router.HandleFunc("/policy/public-key", handlePolicyPublicKey(s.Policy)).Methods("GET")
}

func policyStatus(result policy.IssueResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Error {
	case policy.ErrCodeDeviceNotFound, policy.ErrCodeTeamNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleIssuePolicy(engine *policy.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		deviceID := mux.Vars(r)["id"]
		result := engine.IssuePolicy(r.Context(), deviceID, id.ClientIP())

		event := audit.PolicyIssueEvent{
			DeviceID:      deviceID,
			PolicyVersion: result.PolicyVersion,
			SourceIP:      id.ClientIP(),
			Success:       result.Success,
			ErrorCode:     result.Error,
		}
		if result.Payload != nil {
			event.TeamID = result.Payload.TeamID
		}
		audit.Log(event)

		writeJSON(w, policyStatus(result), result)
	}
}

func handleRecentIssues(engine *policy.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := mux.Vars(r)["id"]

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = parsed
		}

		issues, err := engine.RecentIssues(r.Context(), deviceID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list issues")
			return
		}

		writeJSON(w, http.StatusOK, issues)
	}
}

func handlePolicyPublicKey(engine *policy.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-pem-file")
		_, _ = w.Write(engine.PublicKeyPem())
	}
}
