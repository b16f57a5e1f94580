package policy

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fieldgate/fieldgate/pkg/store"
)

// MockDeviceStore implements store.DeviceStore for testing using testify/mock
type MockDeviceStore struct {
	mock.Mock
}

func NewMockDeviceStore() *MockDeviceStore {
	return &MockDeviceStore{}
}

func (m *MockDeviceStore) FetchDevice(ctx context.Context, id string) (*store.Device, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Device), args.Error(1)
}

func (m *MockDeviceStore) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTeamStore implements store.TeamStore for testing using testify/mock
type MockTeamStore struct {
	mock.Mock
}

func NewMockTeamStore() *MockTeamStore {
	return &MockTeamStore{}
}

func (m *MockTeamStore) FetchTeam(ctx context.Context, id string) (*store.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Team), args.Error(1)
}

func (m *MockTeamStore) TeamIDsInRegion(ctx context.Context, regionID string) ([]string, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTeamStore) TeamInRegion(ctx context.Context, teamID, regionID string) (bool, error) {
	args := m.Called(ctx, teamID, regionID)
	return args.Bool(0), args.Error(1)
}

// MockPolicyIssueStore implements store.PolicyIssueStore for testing using testify/mock
type MockPolicyIssueStore struct {
	mock.Mock
}

func NewMockPolicyIssueStore() *MockPolicyIssueStore {
	return &MockPolicyIssueStore{}
}

func (m *MockPolicyIssueStore) RecordIssue(ctx context.Context, issue *store.PolicyIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockPolicyIssueStore) RecentIssues(ctx context.Context, deviceID string, limit int) ([]store.PolicyIssue, error) {
	args := m.Called(ctx, deviceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PolicyIssue), args.Error(1)
}
