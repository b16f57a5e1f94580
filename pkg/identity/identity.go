package identity

import (
	"context"
	"net"
	"time"

	"github.com/fieldgate/fieldgate/pkg/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// It combines credential claims with request-specific context.
type Identity struct {
	// Credential claims
	UserID    string
	DeviceID  string
	SessionID string
	TeamID    string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP  net.IP
	RequestID string
}

// FromClaims creates an Identity from verified credential claims.
func FromClaims(claims *token.Claims) *Identity {
	id := &Identity{
		UserID:    claims.Subject,
		DeviceID:  claims.DeviceID,
		SessionID: claims.SessionID,
		TeamID:    claims.TeamID,
		JTI:       claims.ID,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// WithRequestID sets the request correlation id.
func (i *Identity) WithRequestID(requestID string) *Identity {
	i.RequestID = requestID
	return i
}

// ClientIP returns the remote IP as a string, or "" when unset.
func (i *Identity) ClientIP() string {
	if i.RemoteIP == nil {
		return ""
	}
	return i.RemoteIP.String()
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
