package store

import "context"

// RoleAssignment is an active user role assignment joined with its role.
type RoleAssignment struct {
	ID             string
	UserID         string
	RoleID         string
	RoleName       string
	HierarchyLevel int
	TeamID         string
	RegionID       string
	OrganizationID string
}

// PermissionGrant is a role-permission row joined with its permission.
type PermissionGrant struct {
	PermissionID string
	RoleID       string
	RoleName     string
	Resource     string
	Action       string
	Scope        string
	CrossTeam    bool
}

// RoleStore serves the role graph: assignments, explicit inheritance
// edges, and the permissions attached to roles.
type RoleStore interface {
	// ActiveAssignments returns the user's active assignments, each
	// referencing an active role. Empty result is not an error.
	ActiveAssignments(ctx context.Context, userID string) ([]RoleAssignment, error)

	// InheritedRoleIDs expands roleIDs through the explicit inheritance
	// edges to the full transitive closure, input included.
	InheritedRoleIDs(ctx context.Context, roleIDs []string) ([]string, error)

	// PermissionsForRoles returns all active permission grants held by
	// the given roles.
	PermissionsForRoles(ctx context.Context, roleIDs []string) ([]PermissionGrant, error)
}

// ProjectStore answers the direct-assignment checks the PROJECTS
// resource consults before the generic permission set.
type ProjectStore interface {
	UserAssignedToProject(ctx context.Context, userID, projectID string) (bool, error)
	TeamAssignedToProject(ctx context.Context, teamIDs []string, projectID string) (bool, error)
}
