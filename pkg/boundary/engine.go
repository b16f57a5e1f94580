package boundary

import (
	"context"
	"log"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// sensitiveResources force requiresAudit even for organization-scope
// admins.
var sensitiveResources = map[authz.Resource]bool{
	authz.ResourceSystemSettings: true,
	authz.ResourceSupervisorPins: true,
	authz.ResourceAuditLogs:      true,
	authz.ResourceAuth:           true,
}

// operationalResources are what the national support role may reach
// across teams. System configuration is deliberately not among them.
var operationalResources = map[authz.Resource]bool{
	authz.ResourceDevices:        true,
	authz.ResourceTelemetry:      true,
	authz.ResourcePolicy:         true,
	authz.ResourceSupportTickets: true,
	authz.ResourceTeams:          true,
	authz.ResourceUsers:          true,
}

// crossTeamClass reports whether a role's reach extends past a single
// team by definition, rather than through a cross-team grant.
func crossTeamClass(name authz.RoleName) bool {
	switch name {
	case authz.RoleRegionalManager, authz.RoleAuditor, authz.RolePolicyAdmin,
		authz.RoleNationalSupport, authz.RoleSystemAdmin:
		return true
	}
	return false
}

// Engine gates cross-tenant access on role-derived scope, independent
// of the fine-grained permission matrix.
type Engine struct {
	authz *authz.Engine
	teams store.TeamStore
}

func NewEngine(authzEngine *authz.Engine, teams store.TeamStore) *Engine {
	return &Engine{authz: authzEngine, teams: teams}
}

// UserTeamAccess resolves the tenant reach of a user from their active
// role assignments.
func (e *Engine) UserTeamAccess(ctx context.Context, userID string) (*TeamAccess, error) {
	assignments, err := e.authz.Assignments(ctx, userID)
	if err != nil {
		return nil, err
	}

	access := &TeamAccess{AccessScope: AccessScopeUser}

	teamSeen := map[string]bool{}
	regionSeen := map[string]bool{}
	crossSeen := map[string]bool{}
	highest := -1

	for _, a := range assignments {
		if a.TeamID != "" && !teamSeen[a.TeamID] {
			teamSeen[a.TeamID] = true
			access.AccessibleTeamIDs = append(access.AccessibleTeamIDs, a.TeamID)
		}
		if a.RegionID != "" && !regionSeen[a.RegionID] {
			regionSeen[a.RegionID] = true
			access.AccessibleRegionIDs = append(access.AccessibleRegionIDs, a.RegionID)
		}
		if a.HierarchyLevel > highest {
			highest = a.HierarchyLevel
			access.PrimaryTeamID = a.TeamID
		}

		name, err := authz.RoleNameString(a.RoleName)
		if err != nil {
			continue // unknown role names never widen access
		}
		switch name {
		case authz.RoleSystemAdmin:
			access.IsSystemAdmin = true
		case authz.RoleNationalSupport:
			access.IsNationalSupport = true
		case authz.RoleRegionalManager:
			access.IsRegionalManager = true
		}
		if crossTeamClass(name) && !crossSeen[a.RoleName] {
			crossSeen[a.RoleName] = true
			access.CrossTeamRoles = append(access.CrossTeamRoles, a.RoleName)
		}
	}

	// Regional managers reach every team in their regions, not only the
	// ones they are directly assigned to.
	if access.IsRegionalManager {
		for _, regionID := range access.AccessibleRegionIDs {
			ids, err := e.teams.TeamIDsInRegion(ctx, regionID)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				if !teamSeen[id] {
					teamSeen[id] = true
					access.AccessibleTeamIDs = append(access.AccessibleTeamIDs, id)
				}
			}
		}
	}

	switch {
	case access.IsSystemAdmin || access.IsNationalSupport:
		access.AccessScope = AccessScopeOrganization
	case access.IsRegionalManager:
		access.AccessScope = AccessScopeRegion
	case len(access.AccessibleTeamIDs) > 0:
		access.AccessScope = AccessScopeTeam
	}

	// Fall back to the first assigned team when the highest role is an
	// organization-wide assignment without one.
	if access.PrimaryTeamID == "" && len(access.AccessibleTeamIDs) > 0 {
		access.PrimaryTeamID = access.AccessibleTeamIDs[0]
	}

	return access, nil
}

// EnforceTeamBoundary evaluates a cross-tenant access request. It never
// returns an error; evaluation failures fail closed with
// BOUNDARY_ENFORCEMENT_ERROR.
func (e *Engine) EnforceTeamBoundary(ctx context.Context, bctx *Context) Decision {
	decision, err := e.enforce(ctx, bctx)
	if err != nil {
		log.Printf("boundary: enforcement failed for user %s target %s: %v", bctx.UserID, bctx.TargetTeamID, err)
		decision = Decision{Reason: ReasonEnforcementError, RequiresAudit: true}
	}
	metrics.ObserveBoundaryDecision(decision.Reason, decision.Allowed)
	return decision
}

func (e *Engine) enforce(ctx context.Context, bctx *Context) (Decision, error) {
	access, err := e.UserTeamAccess(ctx, bctx.UserID)
	if err != nil {
		return Decision{}, err
	}

	// First match wins.
	if access.AccessScope == AccessScopeUser && len(access.CrossTeamRoles) == 0 {
		return Decision{Reason: ReasonNoTeamAssignment, Scope: AccessScopeUser}, nil
	}

	if access.IsSystemAdmin {
		audit := sensitiveResources[bctx.ResourceType] || bctx.Action.IsManageClass()
		return Decision{
			Allowed:       true,
			Reason:        ReasonSystemAdminAccess,
			Scope:         AccessScopeOrganization,
			RequiresAudit: audit,
		}, nil
	}

	if access.IsNationalSupport {
		if bctx.ResourceType == authz.ResourceSystemSettings {
			return Decision{
				Reason:        ReasonNationalSupportSysDenied,
				Scope:         AccessScopeOrganization,
				RequiresAudit: true,
			}, nil
		}
		if operationalResources[bctx.ResourceType] {
			return Decision{
				Allowed:       true,
				Reason:        ReasonNationalSupportCrossTeam,
				Scope:         AccessScopeOrganization,
				RequiresAudit: true,
			}, nil
		}
	}

	if access.IsRegionalManager && bctx.TargetTeamID != "" {
		for _, regionID := range access.AccessibleRegionIDs {
			in, err := e.teams.TeamInRegion(ctx, bctx.TargetTeamID, regionID)
			if err != nil {
				return Decision{}, err
			}
			if in {
				return Decision{
					Allowed:         true,
					Reason:          ReasonRegionalManagerAccess,
					Scope:           AccessScopeRegion,
					AccessedThrough: regionID,
				}, nil
			}
		}
		return Decision{
			Reason:        ReasonRegionalBoundaryViolation,
			Scope:         AccessScopeRegion,
			RequiresAudit: true,
		}, nil
	}

	if bctx.TargetTeamID != "" && access.CanReachTeam(bctx.TargetTeamID) {
		return Decision{
			Allowed:         true,
			Reason:          ReasonStandardTeamAccess,
			Scope:           AccessScopeTeam,
			AccessedThrough: bctx.TargetTeamID,
		}, nil
	}

	// Out-of-team target: fall back to the fine-grained matrix. Only a
	// grant explicitly marked cross-team can carry a user past the
	// boundary.
	check := e.authz.CheckPermission(ctx, bctx.UserID, bctx.ResourceType, bctx.Action, &authz.Context{
		TeamID:    bctx.TargetTeamID,
		RequestID: bctx.RequestID,
	})
	if !check.Allowed {
		if check.Reason == authz.ReasonNoPermissions {
			return Decision{Reason: ReasonTeamBoundaryViolation, Scope: access.AccessScope, RequiresAudit: true}, nil
		}
		return Decision{Reason: ReasonCrossTeamPermissionDenied, Scope: access.AccessScope, RequiresAudit: true}, nil
	}

	set, err := e.authz.ComputeEffectivePermissions(ctx, bctx.UserID)
	if err != nil {
		return Decision{}, err
	}
	if perm, ok := set.Find(bctx.ResourceType, bctx.Action); ok && perm.CrossTeam {
		return Decision{
			Allowed:         true,
			Reason:          ReasonCrossTeamPermissionGranted,
			Scope:           access.AccessScope,
			AccessedThrough: perm.RoleName,
			RequiresAudit:   true,
		}, nil
	}
	return Decision{Reason: ReasonCrossTeamPermissionDenied, Scope: access.AccessScope, RequiresAudit: true}, nil
}

// DetectPrivilegeEscalation reports whether requestedScope exceeds the
// user's actual access scope. Resolution failures count as escalation.
func (e *Engine) DetectPrivilegeEscalation(ctx context.Context, userID string, requestedScope AccessScope) bool {
	access, err := e.UserTeamAccess(ctx, userID)
	if err != nil {
		log.Printf("boundary: escalation check failed for user %s: %v", userID, err)
		return true
	}
	return requestedScope.Exceeds(access.AccessScope)
}
