package model

import "time"

// Session statuses.
const (
	SessionOpen  = "open"
	SessionEnded = "ended"
)

// Session tracks a device-bound work session. Created on login, touched
// on refresh, stamped with OverrideUntil on supervisor override, and
// ended on logout or expiry.
type Session struct {
	ID             string     `gorm:"column:id;primaryKey"`
	UserID         string     `gorm:"column:user_id;not null;index"`
	TeamID         string     `gorm:"column:team_id"`
	DeviceID       string     `gorm:"column:device_id;not null;index"`
	Status         string     `gorm:"column:status;not null;default:open"`
	StartedAt      time.Time  `gorm:"column:started_at;autoCreateTime"`
	ExpiresAt      time.Time  `gorm:"column:expires_at;not null"`
	OverrideUntil  *time.Time `gorm:"column:override_until"`
	LastActivityAt time.Time  `gorm:"column:last_activity_at"`
}

func (Session) TableName() string {
	return "sessions"
}
