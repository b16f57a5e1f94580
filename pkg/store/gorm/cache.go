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

// Ensure CacheStore implements store.CacheStore
var _ store.CacheStore = (*CacheStore)(nil)

// CacheStore implements the shared permission-cache tier using GORM
type CacheStore struct {
	db *gorm.DB
}

// NewCacheStore creates a new CacheStore
func NewCacheStore(db *gorm.DB) *CacheStore {
	return &CacheStore{db: db}
}

func (s *CacheStore) GetEntry(ctx context.Context, userID string) (*store.CacheEntry, error) {
	var entry model.PermissionCacheEntry
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&entry)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.CacheEntry{
		UserID:     entry.UserID,
		Payload:    []byte(entry.Payload),
		Version:    entry.Version,
		ComputedAt: entry.ComputedAt,
		ExpiresAt:  entry.ExpiresAt,
	}, nil
}

// PutEntry upserts the user's entry; the newest write wins.
func (s *CacheStore) PutEntry(ctx context.Context, entry *store.CacheEntry) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&model.PermissionCacheEntry{
			UserID:     entry.UserID,
			Payload:    string(entry.Payload),
			Version:    entry.Version,
			ComputedAt: entry.ComputedAt,
			ExpiresAt:  entry.ExpiresAt,
		}).Error
}

func (s *CacheStore) DeleteEntry(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PermissionCacheEntry{}).Error
}

func (s *CacheStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.PermissionCacheEntry{})
	return tx.RowsAffected, tx.Error
}
