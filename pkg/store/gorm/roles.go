package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/model"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Ensure RoleStore implements store.RoleStore
var _ store.RoleStore = (*RoleStore)(nil)

// RoleStore implements store.RoleStore using GORM
type RoleStore struct {
	db *gorm.DB
}

// NewRoleStore creates a new RoleStore
func NewRoleStore(db *gorm.DB) *RoleStore {
	return &RoleStore{db: db}
}

// ActiveAssignments returns the user's active assignments joined with
// their active roles.
func (s *RoleStore) ActiveAssignments(ctx context.Context, userID string) ([]store.RoleAssignment, error) {
	var assignments []store.RoleAssignment
	tx := s.db.WithContext(ctx).
		Table("user_role_assignments").
		Select(`user_role_assignments.id,
			user_role_assignments.user_id,
			user_role_assignments.role_id,
			roles.name as role_name,
			roles.hierarchy_level,
			user_role_assignments.team_id,
			user_role_assignments.region_id,
			user_role_assignments.organization_id`).
		Joins("JOIN roles ON roles.id = user_role_assignments.role_id").
		Where("user_role_assignments.user_id = ?", userID).
		Where("user_role_assignments.active = ?", true).
		Where("roles.active = ?", true).
		Scan(&assignments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return assignments, nil
}

// InheritedRoleIDs expands roleIDs through the explicit inheritance
// edges to the transitive closure, input included.
func (s *RoleStore) InheritedRoleIDs(ctx context.Context, roleIDs []string) ([]string, error) {
	closure := make([]string, 0, len(roleIDs))
	seen := make(map[string]bool, len(roleIDs))

	frontier := roleIDs
	for _, id := range roleIDs {
		if !seen[id] {
			seen[id] = true
			closure = append(closure, id)
		}
	}

	// The role graph is nine nodes deep at most; a query per level is
	// fine.
	for len(frontier) > 0 {
		var edges []model.RoleInheritance
		tx := s.db.WithContext(ctx).
			Where("role_id IN ?", frontier).
			Find(&edges)
		if tx.Error != nil {
			return nil, tx.Error
		}

		frontier = frontier[:0]
		for _, edge := range edges {
			if !seen[edge.InheritsRoleID] {
				seen[edge.InheritsRoleID] = true
				closure = append(closure, edge.InheritsRoleID)
				frontier = append(frontier, edge.InheritsRoleID)
			}
		}
	}

	return closure, nil
}

// PermissionsForRoles returns all active permission grants held by the
// given roles.
func (s *RoleStore) PermissionsForRoles(ctx context.Context, roleIDs []string) ([]store.PermissionGrant, error) {
	if len(roleIDs) == 0 {
		return []store.PermissionGrant{}, nil
	}

	var grants []store.PermissionGrant
	tx := s.db.WithContext(ctx).
		Table("role_permissions").
		Select(`permissions.id as permission_id,
			role_permissions.role_id,
			roles.name as role_name,
			permissions.resource,
			permissions.action,
			permissions.scope,
			role_permissions.cross_team`).
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("role_permissions.role_id IN ?", roleIDs).
		Where("permissions.active = ?", true).
		Scan(&grants)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return grants, nil
}

// Ensure ProjectStore implements store.ProjectStore
var _ store.ProjectStore = (*ProjectStore)(nil)

// ProjectStore implements store.ProjectStore using GORM
type ProjectStore struct {
	db *gorm.DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) UserAssignedToProject(ctx context.Context, userID, projectID string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ? AND active = ?", projectID, userID, true).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (s *ProjectStore) TeamAssignedToProject(ctx context.Context, teamIDs []string, projectID string) (bool, error) {
	if len(teamIDs) == 0 {
		return false, nil
	}

	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.ProjectAssignment{}).
		Where("project_id = ? AND team_id IN ? AND active = ?", projectID, teamIDs, true).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}
