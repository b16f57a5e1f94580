package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fieldgate/fieldgate/pkg/store"
)

// MockRoleStore implements store.RoleStore for testing using testify/mock
type MockRoleStore struct {
	mock.Mock
}

func NewMockRoleStore() *MockRoleStore {
	return &MockRoleStore{}
}

func (m *MockRoleStore) ActiveAssignments(ctx context.Context, userID string) ([]store.RoleAssignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.RoleAssignment), args.Error(1)
}

func (m *MockRoleStore) InheritedRoleIDs(ctx context.Context, roleIDs []string) ([]string, error) {
	args := m.Called(ctx, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRoleStore) PermissionsForRoles(ctx context.Context, roleIDs []string) ([]store.PermissionGrant, error) {
	args := m.Called(ctx, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PermissionGrant), args.Error(1)
}

// MockProjectStore implements store.ProjectStore for testing using testify/mock
type MockProjectStore struct {
	mock.Mock
}

func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{}
}

func (m *MockProjectStore) UserAssignedToProject(ctx context.Context, userID, projectID string) (bool, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectStore) TeamAssignedToProject(ctx context.Context, teamIDs []string, projectID string) (bool, error) {
	args := m.Called(ctx, teamIDs, projectID)
	return args.Bool(0), args.Error(1)
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

// MockTokenStore implements store.TokenStore for testing using testify/mock
type MockTokenStore struct {
	mock.Mock
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

func (m *MockTokenStore) RecordIssued(ctx context.Context, cred store.IssuedCredential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenStore) Revoke(ctx context.Context, rev store.Revocation) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *MockTokenStore) JTIsForSession(ctx context.Context, sessionID, userID string) ([]string, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTokenStore) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) DeleteIssuedExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionStore implements store.SessionStore for testing using testify/mock
type MockSessionStore struct {
	mock.Mock
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

func (m *MockSessionStore) FetchSession(ctx context.Context, id string) (*store.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Session), args.Error(1)
}

func (m *MockSessionStore) CreateSession(ctx context.Context, s *store.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) TouchActivity(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockSessionStore) SetOverrideUntil(ctx context.Context, id string, until time.Time) error {
	args := m.Called(ctx, id, until)
	return args.Error(0)
}

func (m *MockSessionStore) EndSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
