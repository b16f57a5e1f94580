package model

import "time"

// PermissionCacheEntry is the shared tier of the two-tier permission
// cache: the serialized effective permission set per user, surviving
// process restarts.
type PermissionCacheEntry struct {
	UserID     string    `gorm:"column:user_id;primaryKey"`
	Payload    string    `gorm:"column:payload;not null"`
	Version    int64     `gorm:"column:version;not null"`
	ComputedAt time.Time `gorm:"column:computed_at;not null"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null;index"`
}

func (PermissionCacheEntry) TableName() string {
	return "permission_cache"
}
