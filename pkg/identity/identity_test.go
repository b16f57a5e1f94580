package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/token"
)

func TestFromClaims(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	claims := &token.Claims{
		DeviceID:  "device-1",
		SessionID: "session-1",
		TeamID:    "team-1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	id := FromClaims(claims)

	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "device-1", id.DeviceID)
	assert.Equal(t, "session-1", id.SessionID)
	assert.Equal(t, "team-1", id.TeamID)
	assert.Equal(t, "jti-1", id.JTI)
	assert.Equal(t, now, id.IssuedAt)
	assert.Equal(t, now.Add(time.Hour), id.ExpiresAt)
}

func TestFromClaimsWithoutTimestamps(t *testing.T) {
	id := FromClaims(&token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})

	assert.True(t, id.IssuedAt.IsZero())
	assert.True(t, id.ExpiresAt.IsZero())
}

func TestIdentity_WithMethods(t *testing.T) {
	id := &Identity{UserID: "user-1"}

	ip := net.ParseIP("10.0.0.1")
	id.WithRemoteIP(ip).WithRequestID("req-1")

	assert.Equal(t, ip, id.RemoteIP)
	assert.Equal(t, "req-1", id.RequestID)
	assert.Equal(t, "10.0.0.1", id.ClientIP())
}

func TestClientIPUnset(t *testing.T) {
	id := &Identity{}
	assert.Equal(t, "", id.ClientIP())
}

func TestContextRoundTrip(t *testing.T) {
	id := &Identity{UserID: "user-1", SessionID: "session-1"}

	ctx := Set(context.Background(), id)
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestGetMissing(t *testing.T) {
	_, ok := Get(context.Background())
	assert.False(t, ok)
}
