package store

import (
	"context"
	"time"
)

// PolicyIssue is one row of the policy issuance audit trail.
type PolicyIssue struct {
	ID            string
	DeviceID      string
	PolicyVersion int
	SigningKeyID  string
	Payload       string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	SourceIP      string
}

// PolicyIssueStore appends and reads the issuance trail.
type PolicyIssueStore interface {
	RecordIssue(ctx context.Context, issue *PolicyIssue) error

	// RecentIssues returns the newest records for a device, newest
	// first. Unknown device ids yield an empty list, not an error.
	RecentIssues(ctx context.Context, deviceID string, limit int) ([]PolicyIssue, error)
}

// CacheEntry is the shared-tier representation of a cached effective
// permission set.
type CacheEntry struct {
	UserID     string
	Payload    []byte
	Version    int64
	ComputedAt time.Time
	ExpiresAt  time.Time
}

// CacheStore is the shared (cross-instance) tier of the permission
// cache. Stale reads up to the cache TTL are acceptable.
type CacheStore interface {
	GetEntry(ctx context.Context, userID string) (*CacheEntry, error)
	PutEntry(ctx context.Context, entry *CacheEntry) error
	DeleteEntry(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
