package store

import (
	"context"
	"time"
)

// Revocation is one revocation-ledger entry, keyed by JTI.
type Revocation struct {
	JTI       string
	SessionID string
	UserID    string
	Reason    string
	RevokedBy string
	RevokedAt time.Time
}

// IssuedCredential tracks an outstanding token so session-wide
// revocation can find every JTI tied to a session.
type IssuedCredential struct {
	JTI       string
	UserID    string
	SessionID string
	Type      string
	ExpiresAt time.Time
}

// TokenStore is the revocation ledger plus the issued-token index.
type TokenStore interface {
	// RecordIssued registers a freshly issued credential.
	RecordIssued(ctx context.Context, cred IssuedCredential) error

	// IsRevoked reports whether jti has a ledger entry with revocation
	// time at or before now. Callers treat errors as revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// Revoke appends a ledger entry. Revoking an already-revoked or
	// unknown JTI is a no-op, never an error.
	Revoke(ctx context.Context, rev Revocation) error

	// JTIsForSession lists outstanding JTIs tied to a session,
	// optionally narrowed to one user.
	JTIsForSession(ctx context.Context, sessionID, userID string) ([]string, error)

	// DeleteRevokedBefore removes ledger entries older than cutoff
	// (retention cleanup only). Returns the number removed.
	DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteIssuedExpiredBefore prunes the issued-token index of
	// credentials that expired before cutoff.
	DeleteIssuedExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Session is a persisted work session.
type Session struct {
	ID             string
	UserID         string
	TeamID         string
	DeviceID       string
	Status         string
	StartedAt      time.Time
	ExpiresAt      time.Time
	OverrideUntil  *time.Time
	LastActivityAt time.Time
}

// Active reports whether the session is open and unexpired at now. A
// supervisor override extends the session through OverrideUntil.
func (s Session) Active(now time.Time) bool {
	if s.Status != "open" {
		return false
	}
	if now.Before(s.ExpiresAt) {
		return true
	}
	return s.OverrideUntil != nil && now.Before(*s.OverrideUntil)
}

// SessionStore manages session rows.
type SessionStore interface {
	FetchSession(ctx context.Context, id string) (*Session, error)
	CreateSession(ctx context.Context, s *Session) error
	TouchActivity(ctx context.Context, id string, at time.Time) error
	SetOverrideUntil(ctx context.Context, id string, until time.Time) error
	EndSession(ctx context.Context, id string) error
}
