package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/model"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Ensure TeamStore implements store.TeamStore
var _ store.TeamStore = (*TeamStore)(nil)

// TeamStore implements store.TeamStore using GORM
type TeamStore struct {
	db *gorm.DB
}

// NewTeamStore creates a new TeamStore
func NewTeamStore(db *gorm.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) FetchTeam(ctx context.Context, id string) (*store.Team, error) {
	var team model.Team
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&team)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.Team{
		ID:             team.ID,
		Name:           team.Name,
		RegionID:       team.RegionID,
		OrganizationID: team.OrganizationID,
		Timezone:       team.Timezone,
		Active:         team.Active,
	}, nil
}

func (s *TeamStore) TeamIDsInRegion(ctx context.Context, regionID string) ([]string, error) {
	var ids []string
	tx := s.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("region_id = ? AND active = ?", regionID, true).
		Pluck("id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (s *TeamStore) TeamInRegion(ctx context.Context, teamID, regionID string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ? AND region_id = ? AND active = ?", teamID, regionID, true).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// Ensure DeviceStore implements store.DeviceStore
var _ store.DeviceStore = (*DeviceStore)(nil)

// DeviceStore implements store.DeviceStore using GORM
type DeviceStore struct {
	db *gorm.DB
}

// NewDeviceStore creates a new DeviceStore
func NewDeviceStore(db *gorm.DB) *DeviceStore {
	return &DeviceStore{db: db}
}

func (s *DeviceStore) FetchDevice(ctx context.Context, id string) (*store.Device, error) {
	var device model.Device
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&device)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	return &store.Device{
		ID:         device.ID,
		TeamID:     device.TeamID,
		Name:       device.Name,
		Active:     device.Active,
		LastSeenAt: device.LastSeenAt,
	}, nil
}

func (s *DeviceStore) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.Device{}).
		Where("id = ?", id).
		Update("last_seen_at", at).Error
}
