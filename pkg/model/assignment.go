package model

import "time"

// UserRoleAssignment grants a role to a user, optionally scoped to a
// team, region, or organization. A user may hold several assignments at
// once; the one with the highest hierarchy level is the display role.
type UserRoleAssignment struct {
	ID             string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id;not null;index"`
	RoleID         string    `gorm:"column:role_id;not null"`
	TeamID         string    `gorm:"column:team_id"`
	RegionID       string    `gorm:"column:region_id"`
	OrganizationID string    `gorm:"column:organization_id"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	GrantedAt      time.Time `gorm:"column:granted_at;autoCreateTime"`
}

func (UserRoleAssignment) TableName() string {
	return "user_role_assignments"
}

// ProjectAssignment links a user or a team directly to a project. The
// PROJECTS resource consults these before the generic permission set.
type ProjectAssignment struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ProjectID string    `gorm:"column:project_id;not null;index"`
	UserID    string    `gorm:"column:user_id;index"`
	TeamID    string    `gorm:"column:team_id;index"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProjectAssignment) TableName() string {
	return "project_assignments"
}
