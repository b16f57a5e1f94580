package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/model"
	"github.com/fieldgate/fieldgate/pkg/store"
)

// Ensure PolicyIssueStore implements store.PolicyIssueStore
var _ store.PolicyIssueStore = (*PolicyIssueStore)(nil)

// PolicyIssueStore implements store.PolicyIssueStore using GORM
type PolicyIssueStore struct {
	db *gorm.DB
}

// NewPolicyIssueStore creates a new PolicyIssueStore
func NewPolicyIssueStore(db *gorm.DB) *PolicyIssueStore {
	return &PolicyIssueStore{db: db}
}

func (s *PolicyIssueStore) RecordIssue(ctx context.Context, issue *store.PolicyIssue) error {
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}

	return s.db.WithContext(ctx).Create(&model.PolicyIssue{
		ID:            issue.ID,
		DeviceID:      issue.DeviceID,
		PolicyVersion: issue.PolicyVersion,
		SigningKeyID:  issue.SigningKeyID,
		Payload:       issue.Payload,
		IssuedAt:      issue.IssuedAt,
		ExpiresAt:     issue.ExpiresAt,
		SourceIP:      issue.SourceIP,
	}).Error
}

func (s *PolicyIssueStore) RecentIssues(ctx context.Context, deviceID string, limit int) ([]store.PolicyIssue, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []model.PolicyIssue
	tx := s.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("issued_at desc").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	issues := make([]store.PolicyIssue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, store.PolicyIssue{
			ID:            row.ID,
			DeviceID:      row.DeviceID,
			PolicyVersion: row.PolicyVersion,
			SigningKeyID:  row.SigningKeyID,
			Payload:       row.Payload,
			IssuedAt:      row.IssuedAt,
			ExpiresAt:     row.ExpiresAt,
			SourceIP:      row.SourceIP,
		})
	}
	return issues, nil
}
