package model

// Permission is a single (resource, action) capability with a tenancy
// scope. Resource and Action values are members of the closed enums in
// pkg/authz.
type Permission struct {
	ID       string `gorm:"column:id;primaryKey"`
	Resource string `gorm:"column:resource;not null;index:idx_perm_resource_action"`
	Action   string `gorm:"column:action;not null;index:idx_perm_resource_action"`
	Scope    string `gorm:"column:scope;not null"`
	Active   bool   `gorm:"column:active;not null;default:true"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RolePermission joins roles to permissions. CrossTeam marks grants that
// reach beyond the holder's own team.
type RolePermission struct {
	RoleID       string `gorm:"column:role_id;primaryKey"`
	PermissionID string `gorm:"column:permission_id;primaryKey"`
	CrossTeam    bool   `gorm:"column:cross_team;not null;default:false"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
