package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/signer"
	"github.com/fieldgate/fieldgate/pkg/store"
)

var testKey *signer.Key

func init() {
	var err error
	testKey, err = signer.GenerateKey()
	if err != nil {
		panic(err)
	}
}

func newTestService(tokens *MockTokenStore, sessions *MockSessionStore) *Service {
	if sessions == nil {
		sessions = NewMockSessionStore()
	}
	return NewService(testKey, tokens, sessions, DefaultTTLs())
}

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.MatchedBy(func(cred store.IssuedCredential) bool {
		return cred.UserID == "user-1" && cred.SessionID == "session-1" && cred.Type == "access"
	})).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)

	svc := newTestService(tokens, nil)

	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "team-1", TypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.JTI)

	v := svc.VerifyToken(context.Background(), issued.Token, TypeAccess)
	require.True(t, v.Valid)
	assert.Equal(t, "user-1", v.Payload.Subject)
	assert.Equal(t, "device-1", v.Payload.DeviceID)
	assert.Equal(t, "session-1", v.Payload.SessionID)
	assert.Equal(t, "team-1", v.Payload.TeamID)
	assert.Equal(t, issued.JTI, v.JTI)
	tokens.AssertExpectations(t)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	// A refresh token never passes as an access token, even with a
	// valid signature.
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(tokens, nil)

	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeRefresh)
	require.NoError(t, err)

	v := svc.VerifyToken(context.Background(), issued.Token, TypeAccess)
	assert.False(t, v.Valid)
	assert.Equal(t, "Invalid token", v.Error)
	tokens.AssertNotCalled(t, "IsRevoked", mock.Anything, mock.Anything)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	svc := newTestService(NewMockTokenStore(), nil)

	v := svc.VerifyToken(context.Background(), "not.a.token", TypeAccess)
	assert.False(t, v.Valid)
	assert.Equal(t, "Invalid token", v.Error)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(tokens, nil)

	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeAccess)
	require.NoError(t, err)

	last := issued.Token[len(issued.Token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := issued.Token[:len(issued.Token)-1] + string(flipped)
	v := svc.VerifyToken(context.Background(), tampered, TypeAccess)
	assert.False(t, v.Valid)
	assert.Equal(t, "Invalid token", v.Error)
}

func TestVerifyRejectsRevokedToken(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(true, nil)

	svc := newTestService(tokens, nil)

	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeAccess)
	require.NoError(t, err)

	v := svc.VerifyToken(context.Background(), issued.Token, TypeAccess)
	assert.False(t, v.Valid)
	assert.Equal(t, "Token has been revoked", v.Error)
	assert.Equal(t, issued.JTI, v.JTI)
}

func TestVerifyFailsClosedOnLedgerError(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

	svc := newTestService(tokens, nil)

	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeAccess)
	require.NoError(t, err)

	v := svc.VerifyToken(context.Background(), issued.Token, TypeAccess)
	assert.False(t, v.Valid)
	assert.Equal(t, "Token has been revoked", v.Error)
}

func TestOverrideTTLClamped(t *testing.T) {
	svc := NewService(testKey, NewMockTokenStore(), NewMockSessionStore(), TTLs{
		Access:   time.Hour,
		Refresh:  24 * time.Hour,
		Override: 12 * time.Hour,
	})

	ttl, err := svc.ttlFor(TypeOverride)
	require.NoError(t, err)
	assert.Equal(t, OverrideTTLCap, ttl)
}

func TestCreateTokenRejectsUnknownType(t *testing.T) {
	svc := newTestService(NewMockTokenStore(), nil)

	_, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", Type(99))
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestRevokeToken(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("Revoke", mock.Anything, mock.MatchedBy(func(rev store.Revocation) bool {
		return rev.JTI == "jti-1" && rev.Reason == "logout" && rev.RevokedBy == "user-admin"
	})).Return(nil)

	svc := newTestService(tokens, nil)

	require.NoError(t, svc.RevokeToken(context.Background(), "jti-1", "logout", "user-admin"))
	tokens.AssertExpectations(t)
}

func TestRevokeSessionTokens(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("JTIsForSession", mock.Anything, "session-1", "user-1").
		Return([]string{"jti-1", "jti-2"}, nil)
	tokens.On("Revoke", mock.Anything, mock.MatchedBy(func(rev store.Revocation) bool {
		return rev.SessionID == "session-1" && rev.Reason == "logout"
	})).Return(nil).Twice()

	svc := newTestService(tokens, nil)

	require.NoError(t, svc.RevokeSessionTokens(context.Background(), "session-1", "user-1", "logout"))
	tokens.AssertExpectations(t)
}

func TestCreateOverrideStampsSession(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)

	sessions := NewMockSessionStore()
	sessions.On("SetOverrideUntil", mock.Anything, "session-1", mock.MatchedBy(func(until time.Time) bool {
		return until.After(time.Now())
	})).Return(nil)

	svc := newTestService(tokens, sessions)

	_, err := svc.CreateToken(context.Background(), "supervisor-1", "device-1", "session-1", "team-1", TypeOverride)
	require.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestRevokeWholeSessionEndsIt(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("JTIsForSession", mock.Anything, "session-1", "").
		Return([]string{"jti-1"}, nil)
	tokens.On("Revoke", mock.Anything, mock.Anything).Return(nil)

	sessions := NewMockSessionStore()
	sessions.On("EndSession", mock.Anything, "session-1").Return(nil)

	svc := newTestService(tokens, sessions)

	require.NoError(t, svc.RevokeSessionTokens(context.Background(), "session-1", "", "logout"))
	sessions.AssertExpectations(t)
}

func TestSessionActiveDuringOverrideWindow(t *testing.T) {
	now := time.Now().UTC()
	until := now.Add(30 * time.Minute)
	session := store.Session{
		Status:        "open",
		ExpiresAt:     now.Add(-time.Minute),
		OverrideUntil: &until,
	}

	assert.True(t, session.Active(now))
	assert.False(t, session.Active(until.Add(time.Second)))

	session.Status = "ended"
	assert.False(t, session.Active(now))
}

func TestRefreshTokenIssuesNewAccessToken(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)

	now := time.Now().UTC()
	sessions := NewMockSessionStore()
	sessions.On("FetchSession", mock.Anything, "session-1").Return(&store.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Status:    "open",
		StartedAt: now.Add(-time.Hour),
		ExpiresAt: now.Add(time.Hour),
	}, nil)
	sessions.On("TouchActivity", mock.Anything, "session-1", mock.Anything).Return(nil)

	svc := newTestService(tokens, sessions)

	refresh, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "team-1", TypeRefresh)
	require.NoError(t, err)

	access, err := svc.RefreshToken(context.Background(), refresh.Token)
	require.NoError(t, err)

	v := svc.VerifyToken(context.Background(), access.Token, TypeAccess)
	require.True(t, v.Valid)
	assert.Equal(t, "user-1", v.Payload.Subject)
	assert.Equal(t, "team-1", v.Payload.TeamID)
	assert.NotEqual(t, refresh.JTI, access.JTI)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(tokens, nil)

	access, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeAccess)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), access.Token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokenSessionGone(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)

	sessions := NewMockSessionStore()
	sessions.On("FetchSession", mock.Anything, "session-1").Return(nil, nil)

	svc := newTestService(tokens, sessions)

	refresh, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeRefresh)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), refresh.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRefreshTokenInactiveSession(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("RecordIssued", mock.Anything, mock.Anything).Return(nil)
	tokens.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)

	now := time.Now().UTC()
	sessions := NewMockSessionStore()
	sessions.On("FetchSession", mock.Anything, "session-1").Return(&store.Session{
		ID:        "session-1",
		Status:    "ended",
		ExpiresAt: now.Add(time.Hour),
	}, nil)

	svc := newTestService(tokens, sessions)

	refresh, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", TypeRefresh)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), refresh.Token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestIsTokenRevokedFailsClosed(t *testing.T) {
	tokens := NewMockTokenStore()
	tokens.On("IsRevoked", mock.Anything, "jti-1").Return(false, errors.New("connection refused"))

	svc := newTestService(tokens, nil)

	assert.True(t, svc.IsTokenRevoked(context.Background(), "jti-1"))
}

func TestPublicKeyPem(t *testing.T) {
	svc := newTestService(NewMockTokenStore(), nil)
	assert.Contains(t, string(svc.PublicKeyPem()), "BEGIN PUBLIC KEY")
}
