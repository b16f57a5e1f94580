package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/fieldgate/fieldgate/pkg/audit"
	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/boundary"
	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/server/middleware"
)

// EnforceRequest is the body of POST /boundary/enforce.
type EnforceRequest struct {
	TargetTeamID   string `json:"target_team_id"`
	TargetRegionID string `json:"target_region_id,omitempty"`
	Resource       string `json:"resource"`
	Action         string `json:"action"`
	RequestedScope string `json:"requested_scope,omitempty"`
}

// RegisterBoundaryEndpoints registers the boundary enforcement endpoints
// behind bearer auth.
func RegisterBoundaryEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens, s.Config)

	boundaryRouter := s.Router.PathPrefix("/boundary").Subrouter()
	boundaryRouter.Use(auth.Middleware)

	boundaryRouter.HandleFunc("/enforce", handleEnforce(s.Boundary)).Methods("POST")
	boundaryRouter.HandleFunc("/access", handleTeamAccess(s.Boundary)).Methods("GET")
}

func handleEnforce(engine *boundary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		var req EnforceRequest
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

		if req.RequestedScope != "" {
			requested, err := boundary.AccessScopeString(req.RequestedScope)
			if err != nil {
				writeError(w, http.StatusBadRequest, "unknown scope")
				return
			}
			if engine.DetectPrivilegeEscalation(r.Context(), id.UserID, requested) {
				actual := "UNKNOWN"
				if access, err := engine.UserTeamAccess(r.Context(), id.UserID); err == nil {
					actual = access.AccessScope.String()
				}
				audit.Log(audit.EscalationEvent{
					UserID:         id.UserID,
					ClientIP:       id.ClientIP(),
					RequestedScope: requested.String(),
					ActualScope:    actual,
				})
				writeJSON(w, http.StatusForbidden, boundary.Decision{
					Reason:        boundary.ReasonPrivilegeEscalation,
					Scope:         requested,
					RequiresAudit: true,
				})
				return
			}
		}

		decision := engine.EnforceTeamBoundary(r.Context(), &boundary.Context{
			UserID:         id.UserID,
			TargetTeamID:   req.TargetTeamID,
			TargetRegionID: req.TargetRegionID,
			ResourceType:   resource,
			Action:         action,
			RequestID:      id.RequestID,
		})

		if decision.RequiresAudit {
			audit.Log(audit.BoundaryEvent{
				UserID:       id.UserID,
				ClientIP:     id.ClientIP(),
				RequestID:    id.RequestID,
				TargetTeamID: req.TargetTeamID,
				Resource:     resource.String(),
				Action:       action.String(),
				Allowed:      decision.Allowed,
				Reason:       decision.Reason,
				Scope:        decision.Scope.String(),
			})
		}

		if !decision.Allowed {
			writeJSON(w, http.StatusForbidden, decision)
			return
		}
		writeJSON(w, http.StatusOK, decision)
	}
}

func handleTeamAccess(engine *boundary.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		access, err := engine.UserTeamAccess(r.Context(), id.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve team access")
			return
		}

		writeJSON(w, http.StatusOK, access)
	}
}
