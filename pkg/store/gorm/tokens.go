package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldgate/fieldgate/pkg/model"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Ensure TokenStore implements store.TokenStore
var _ store.TokenStore = (*TokenStore)(nil)

// TokenStore implements store.TokenStore using GORM
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a new TokenStore
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) RecordIssued(ctx context.Context, cred store.IssuedCredential) error {
	return s.db.WithContext(ctx).Create(&model.IssuedToken{
		JTI:       cred.JTI,
		UserID:    cred.UserID,
		SessionID: cred.SessionID,
		Type:      cred.Type,
		ExpiresAt: cred.ExpiresAt,
	}).Error
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.TokenRevocation{}).
		Where("jti = ? AND revoked_at <= ?", jti, time.Now().UTC()).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// Revoke appends a ledger entry. Re-revoking a JTI is deduplicated into
// a no-op by the primary key.
func (s *TokenStore) Revoke(ctx context.Context, rev store.Revocation) error {
	entry := model.TokenRevocation{
		JTI:       rev.JTI,
		SessionID: rev.SessionID,
		UserID:    rev.UserID,
		Reason:    rev.Reason,
		RevokedBy: rev.RevokedBy,
		RevokedAt: rev.RevokedAt,
	}
	if entry.RevokedAt.IsZero() {
		entry.RevokedAt = time.Now().UTC()
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

func (s *TokenStore) JTIsForSession(ctx context.Context, sessionID, userID string) ([]string, error) {
	query := s.db.WithContext(ctx).
		Model(&model.IssuedToken{}).
		Where("session_id = ?", sessionID).
		Where("expires_at > ?", time.Now().UTC())
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var jtis []string
	if tx := query.Pluck("jti", &jtis); tx.Error != nil {
		return nil, tx.Error
	}
	return jtis, nil
}

func (s *TokenStore) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("revoked_at < ?", cutoff).
		Delete(&model.TokenRevocation{})
	return tx.RowsAffected, tx.Error
}

func (s *TokenStore) DeleteIssuedExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&model.IssuedToken{})
	return tx.RowsAffected, tx.Error
}

// Ensure SessionStore implements store.SessionStore
var _ store.SessionStore = (*SessionStore)(nil)

// SessionStore implements store.SessionStore using GORM
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) FetchSession(ctx context.Context, id string) (*store.Session, error) {
	var session model.Session
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&session)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.Session{
		ID:             session.ID,
		UserID:         session.UserID,
		TeamID:         session.TeamID,
		DeviceID:       session.DeviceID,
		Status:         session.Status,
		StartedAt:      session.StartedAt,
		ExpiresAt:      session.ExpiresAt,
		OverrideUntil:  session.OverrideUntil,
		LastActivityAt: session.LastActivityAt,
	}, nil
}

func (s *SessionStore) CreateSession(ctx context.Context, session *store.Session) error {
	return s.db.WithContext(ctx).Create(&model.Session{
		ID:             session.ID,
		UserID:         session.UserID,
		TeamID:         session.TeamID,
		DeviceID:       session.DeviceID,
		Status:         session.Status,
		StartedAt:      session.StartedAt,
		ExpiresAt:      session.ExpiresAt,
		OverrideUntil:  session.OverrideUntil,
		LastActivityAt: session.LastActivityAt,
	}).Error
}

func (s *SessionStore) TouchActivity(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("last_activity_at", at).Error
}

func (s *SessionStore) SetOverrideUntil(ctx context.Context, id string, until time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("override_until", until).Error
}

func (s *SessionStore) EndSession(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Update("status", model.SessionEnded).Error
}
