package token

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fieldgate/fieldgate/pkg/store"
)

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
