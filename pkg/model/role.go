package model

import "time"

// Role is one of the nine fixed platform roles. Rows are seeded once and
// immutable at runtime; HierarchyLevel never changes after seeding.
type Role struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;uniqueIndex"`
	HierarchyLevel int       `gorm:"column:hierarchy_level;not null"`
	IsSystemRole   bool      `gorm:"column:is_system_role;not null;default:false"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleInheritance is an explicit inheritance edge: RoleID inherits all
// permissions of InheritsRoleID. Edges are seeded, never derived from
// hierarchy level alone.
type RoleInheritance struct {
	RoleID         string `gorm:"column:role_id;primaryKey"`
	InheritsRoleID string `gorm:"column:inherits_role_id;primaryKey"`
}

func (RoleInheritance) TableName() string {
	return "role_inheritances"
}
