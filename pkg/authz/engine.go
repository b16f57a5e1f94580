package authz

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/fieldgate/fieldgate/pkg/authz/cache"
	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Engine resolves role hierarchies into effective permissions and
// evaluates permission checks. It owns no hidden state: both cache
// tiers are injected at construction, so tests get isolated instances.
//
// Checks fail closed: any store error during evaluation produces a
// structured denial, never an error to the caller.
type Engine struct {
	roles     store.RoleStore
	projects  store.ProjectStore
	cache     *cache.Cache
	hierarchy Hierarchy
}

// NewEngine constructs an Engine. hierarchy may be nil, in which case
// the default level table applies.
func NewEngine(roles store.RoleStore, projects store.ProjectStore, permCache *cache.Cache, hierarchy Hierarchy) *Engine {
	if hierarchy == nil {
		hierarchy = DefaultHierarchy()
	}
	return &Engine{
		roles:     roles,
		projects:  projects,
		cache:     permCache,
		hierarchy: hierarchy,
	}
}

// Hierarchy returns the engine's level table.
func (e *Engine) Hierarchy() Hierarchy {
	return e.hierarchy
}

// resolvePermissions computes the effective permission set from the
// role graph, without touching the cache.
func (e *Engine) resolvePermissions(ctx context.Context, userID string) ([]EffectivePermission, error) {
	assignments, err := e.roles.ActiveAssignments(ctx, userID)
	if err != nil {
		return nil, err
	}
	// No assignments means an empty set, not an error.
	if len(assignments) == 0 {
		return []EffectivePermission{}, nil
	}

	roleIDs := make([]string, 0, len(assignments))
	roleNames := make(map[string]string, len(assignments))
	for _, a := range assignments {
		roleIDs = append(roleIDs, a.RoleID)
		roleNames[a.RoleID] = a.RoleName
	}

	closure, err := e.roles.InheritedRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}

	grants, err := e.roles.PermissionsForRoles(ctx, closure)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]EffectivePermission, len(grants))
	for _, g := range grants {
		resource, err := ResourceString(g.Resource)
		if err != nil {
			continue
		}
		action, err := ActionString(g.Action)
		if err != nil {
			continue
		}
		scope, err := ScopeString(g.Scope)
		if err != nil {
			continue
		}

		perm := EffectivePermission{
			Resource:      resource,
			Action:        action,
			Scope:         scope,
			InheritedFrom: g.RoleID,
			RoleName:      g.RoleName,
			CrossTeam:     g.CrossTeam,
		}

		existing, ok := merged[perm.Key()]
		if !ok || perm.Scope.Broader(existing.Scope) {
			merged[perm.Key()] = perm
		}
	}

	permissions := make([]EffectivePermission, 0, len(merged))
	for _, p := range merged {
		permissions = append(permissions, p)
	}
	sort.Slice(permissions, func(i, j int) bool {
		if permissions[i].Resource != permissions[j].Resource {
			return permissions[i].Resource < permissions[j].Resource
		}
		return permissions[i].Action < permissions[j].Action
	})

	return permissions, nil
}

// ComputeEffectivePermissions returns the user's effective permission
// set, served from the two-tier cache when fresh and recomputed (and
// cached through both tiers) otherwise.
func (e *Engine) ComputeEffectivePermissions(ctx context.Context, userID string) (*EffectivePermissionSet, error) {
	entry, err := e.cache.GetOrCompute(ctx, userID, func(ctx context.Context) ([]byte, error) {
		permissions, err := e.resolvePermissions(ctx, userID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(permissions)
	})
	if err != nil {
		return nil, err
	}

	var permissions []EffectivePermission
	if err := json.Unmarshal(entry.Payload, &permissions); err != nil {
		return nil, err
	}

	return &EffectivePermissionSet{
		UserID:      userID,
		Permissions: permissions,
		ComputedAt:  entry.ComputedAt,
		ExpiresAt:   entry.ExpiresAt,
		Version:     entry.Version,
	}, nil
}

// CheckPermission evaluates whether userID may perform action on
// resource. RequiredPermission is filled in even on denial for audit
// logging. The check never returns an error; every failure path is a
// structured denial.
func (e *Engine) CheckPermission(ctx context.Context, userID string, resource Resource, action Action, checkCtx *Context) CheckResult {
	start := time.Now()
	result := e.checkPermission(ctx, userID, resource, action, checkCtx)
	result.RequiredPermission = resource.String() + "." + action.String()
	result.EvaluationTime = time.Since(start)

	metrics.ObservePermissionCheck(resource.String(), result.Allowed, result.EvaluationTime)
	return result
}

func (e *Engine) checkPermission(ctx context.Context, userID string, resource Resource, action Action, checkCtx *Context) CheckResult {
	// SYSTEM_SETTINGS never falls back to the generic matrix: only an
	// explicit system_admin role qualifies, regardless of how broad the
	// caller's other grants are.
	if resource == ResourceSystemSettings {
		isAdmin, err := e.HasAnyRole(ctx, userID, RoleSystemAdmin)
		if err != nil || !isAdmin {
			return CheckResult{Allowed: false, Reason: ReasonSystemSettingsCheck}
		}
		return CheckResult{
			Allowed:   true,
			Reason:    ReasonSystemAdminAccess,
			GrantedBy: RoleSystemAdmin.String(),
		}
	}

	// PROJECTS consults direct and team assignments before the generic
	// permission set.
	if resource == ResourceProjects && checkCtx != nil && checkCtx.ResourceID != "" && e.projects != nil {
		if result, decided := e.checkProjectAssignments(ctx, userID, checkCtx.ResourceID); decided {
			return result
		}
	}

	set, err := e.ComputeEffectivePermissions(ctx, userID)
	if err != nil {
		// Fail closed: infrastructure trouble reads as no permissions.
		return CheckResult{Allowed: false, Reason: ReasonNoPermissions}
	}

	perm, ok := set.Find(resource, action)
	if !ok {
		return CheckResult{Allowed: false, Reason: ReasonNoPermissions}
	}

	return CheckResult{
		Allowed:   true,
		Reason:    ReasonPermissionGranted,
		GrantedBy: perm.RoleName,
	}
}

func (e *Engine) checkProjectAssignments(ctx context.Context, userID, projectID string) (CheckResult, bool) {
	direct, err := e.projects.UserAssignedToProject(ctx, userID, projectID)
	if err == nil && direct {
		return CheckResult{Allowed: true, Reason: ReasonProjectDirectAssignment}, true
	}

	assignments, err := e.roles.ActiveAssignments(ctx, userID)
	if err != nil {
		// Defer to the generic lookup, which fails closed on its own.
		return CheckResult{}, false
	}

	teamIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.TeamID != "" {
			teamIDs = append(teamIDs, a.TeamID)
		}
	}
	if len(teamIDs) == 0 {
		return CheckResult{}, false
	}

	viaTeam, err := e.projects.TeamAssignedToProject(ctx, teamIDs, projectID)
	if err == nil && viaTeam {
		return CheckResult{Allowed: true, Reason: ReasonProjectTeamAssignment}, true
	}
	return CheckResult{}, false
}

// HasAnyRole reports whether the user holds an active assignment for
// any of the listed roles.
func (e *Engine) HasAnyRole(ctx context.Context, userID string, names ...RoleName) (bool, error) {
	assignments, err := e.roles.ActiveAssignments(ctx, userID)
	if err != nil {
		return false, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n.String()] = true
	}

	for _, a := range assignments {
		if wanted[a.RoleName] {
			return true, nil
		}
	}
	return false, nil
}

// UserHighestRoleLevel returns the level of the user's most privileged
// active role, or 0 if the user holds none.
func (e *Engine) UserHighestRoleLevel(ctx context.Context, userID string) (int, error) {
	assignments, err := e.roles.ActiveAssignments(ctx, userID)
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, a := range assignments {
		if a.HierarchyLevel > highest {
			highest = a.HierarchyLevel
		}
	}
	return highest, nil
}

// Assignments exposes the user's active assignments to collaborators
// (the boundary engine derives tenant scope from them).
func (e *Engine) Assignments(ctx context.Context, userID string) ([]store.RoleAssignment, error) {
	return e.roles.ActiveAssignments(ctx, userID)
}

// InvalidatePermissionCache clears both cache tiers for the user.
func (e *Engine) InvalidatePermissionCache(ctx context.Context, userID string) error {
	return e.cache.Invalidate(ctx, userID)
}

// CleanupExpiredCache sweeps expired entries from both tiers. Run from
// the scheduler, never on the request path.
func (e *Engine) CleanupExpiredCache(ctx context.Context) (int64, error) {
	return e.cache.CleanupExpired(ctx)
}
