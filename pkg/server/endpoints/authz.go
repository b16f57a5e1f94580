package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/fieldgate/fieldgate/pkg/audit"
	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/server/middleware"
)

// CheckRequest is the body of POST /authz/check.
type CheckRequest struct {
	Resource string         `json:"resource"`
	Action   string         `json:"action"`
	Context  *authz.Context `json:"context,omitempty"`
}

// RegisterAuthzEndpoints registers the permission check and effective
// permission endpoints behind bearer auth.
func RegisterAuthzEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens, s.Config)

	authzRouter := s.Router.PathPrefix("/authz").Subrouter()
	authzRouter.Use(auth.Middleware)

	authzRouter.HandleFunc("/check", handleCheck(s.Authz)).Methods("POST")
	authzRouter.HandleFunc("/permissions", handlePermissions(s.Authz)).Methods("GET")
}

func handleCheck(engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		var req CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		resource, err := authz.ResourceString(req.Resource)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown resource")
			return
		}
		action, err := authz.ActionString(req.Action)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown action")
			return
		}

		checkCtx := req.Context
		if checkCtx != nil && checkCtx.RequestID == "" {
			checkCtx.RequestID = id.RequestID
		}

		result := engine.CheckPermission(r.Context(), id.UserID, resource, action, checkCtx)

		if !result.Allowed {
			audit.Log(audit.CheckEvent{
				UserID:             id.UserID,
				ClientIP:           id.ClientIP(),
				RequestID:          id.RequestID,
				RequiredPermission: result.RequiredPermission,
				Allowed:            false,
				Reason:             result.Reason,
			})
			writeJSON(w, http.StatusForbidden, result)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handlePermissions(engine *authz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		set, err := engine.ComputeEffectivePermissions(r.Context(), id.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve permissions")
			return
		}

		writeJSON(w, http.StatusOK, set)
	}
}
