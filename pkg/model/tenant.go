package model

import "time"

// Team is the primary tenancy unit. Every device and most role
// assignments belong to exactly one team.
type Team struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	RegionID       string    `gorm:"column:region_id;index"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	Timezone       string    `gorm:"column:timezone;not null;default:UTC"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Team) TableName() string {
	return "teams"
}

// Region groups teams for regional-manager scoping.
type Region struct {
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name;not null"`
	OrganizationID string `gorm:"column:organization_id;index"`
	Active         bool   `gorm:"column:active;not null;default:true"`
}

func (Region) TableName() string {
	return "regions"
}

// Device is a field device enrolled with a team. LastSeenAt is touched
// on every successful policy issuance.
type Device struct {
	ID         string     `gorm:"column:id;primaryKey"`
	TeamID     string     `gorm:"column:team_id;not null;index"`
	Name       string     `gorm:"column:name"`
	Active     bool       `gorm:"column:active;not null;default:true"`
	LastSeenAt *time.Time `gorm:"column:last_seen_at"`
	EnrolledAt time.Time  `gorm:"column:enrolled_at;autoCreateTime"`
}

func (Device) TableName() string {
	return "devices"
}
