package authz

import (
	"context"

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
