// Package token issues, verifies, and revokes the platform's session
// credentials: short-lived access tokens, long-lived refresh tokens,
// and supervisor override tokens capped at two hours. Tokens are RS256
// JWTs signed by the credential signer; they are immutable once issued
// and invalidated only through the revocation ledger.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/signer"
	"github.com/fieldgate/fieldgate/pkg/store"
)

//go:generate go run github.com/dmarkham/enumer -type Type -trimprefix Type -transform lower -json -output type.gen.go

// Type is the closed set of credential types.
type Type int

const (
	TypeAccess Type = iota
	TypeRefresh
	TypeOverride
)

// OverrideTTLCap is the hard ceiling on supervisor override tokens.
const OverrideTTLCap = 2 * time.Hour

var (
	ErrInvalidTokenType    = errors.New("invalid token type")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSessionNotFound     = errors.New("session not found")
)

// Verification error strings. Malformed and bad-signature tokens get
// the generic message; the reason is never leaked.
const (
	errInvalidToken = "Invalid token"
	errTokenRevoked = "Token has been revoked"
)

// Claims is the signed payload of a credential.
type Claims struct {
	DeviceID  string `json:"x-device-id"`
	SessionID string `json:"x-session-id"`
	TeamID    string `json:"x-team-id,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Issued describes a freshly created credential.
type Issued struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// Verification is the outcome of verifying a credential. When Valid is
// false, Error carries the audit-safe message.
type Verification struct {
	Valid   bool
	Payload *Claims
	JTI     string
	Error   string
}

// TTLs configures the per-type token lifetimes.
type TTLs struct {
	Access   time.Duration
	Refresh  time.Duration
	Override time.Duration
}

// DefaultTTLs returns the stock lifetimes.
func DefaultTTLs() TTLs {
	return TTLs{
		Access:   time.Hour,
		Refresh:  7 * 24 * time.Hour,
		Override: OverrideTTLCap,
	}
}

// Service is the token service. All methods may block on store I/O.
type Service struct {
	key      *signer.Key
	tokens   store.TokenStore
	sessions store.SessionStore
	ttls     TTLs
}

// NewService builds a Service signing with key. Override TTLs beyond
// the cap are clamped.
func NewService(key *signer.Key, tokens store.TokenStore, sessions store.SessionStore, ttls TTLs) *Service {
	if ttls.Access <= 0 {
		ttls.Access = DefaultTTLs().Access
	}
	if ttls.Refresh <= 0 {
		ttls.Refresh = DefaultTTLs().Refresh
	}
	if ttls.Override <= 0 || ttls.Override > OverrideTTLCap {
		ttls.Override = OverrideTTLCap
	}
	return &Service{key: key, tokens: tokens, sessions: sessions, ttls: ttls}
}

func (s *Service) ttlFor(typ Type) (time.Duration, error) {
	switch typ {
	case TypeAccess:
		return s.ttls.Access, nil
	case TypeRefresh:
		return s.ttls.Refresh, nil
	case TypeOverride:
		return s.ttls.Override, nil
	default:
		return 0, ErrInvalidTokenType
	}
}

// CreateToken issues a signed credential of the given type. The token
// embeds subject, device, session, optional team, type, and a fresh
// JTI; it is recorded in the issued-token index for session-wide
// revocation.
func (s *Service) CreateToken(ctx context.Context, userID, deviceID, sessionID, teamID string, typ Type) (*Issued, error) {
	if !typ.IsAType() {
		return nil, ErrInvalidTokenType
	}
	ttl, err := s.ttlFor(typ)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := Claims{
		DeviceID:  deviceID,
		SessionID: sessionID,
		TeamID:    teamID,
		TokenType: typ.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key.Private())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.tokens.RecordIssued(ctx, store.IssuedCredential{
		JTI:       jti,
		UserID:    userID,
		SessionID: sessionID,
		Type:      typ.String(),
		ExpiresAt: now.Add(ttl),
	}); err != nil {
		return nil, fmt.Errorf("record issued token: %w", err)
	}

	// An override credential widens the session for its lifetime; the
	// session row carries the stamp so it outlives the token cache.
	if typ == TypeOverride {
		if err := s.sessions.SetOverrideUntil(ctx, sessionID, now.Add(ttl)); err != nil {
			return nil, fmt.Errorf("stamp override window: %w", err)
		}
	}

	return &Issued{Token: signed, JTI: jti, ExpiresAt: now.Add(ttl)}, nil
}

// VerifyToken checks a credential in order: structure and signature
// first, then type match, then the revocation ledger. The ordering is
// deliberate: cheap local checks run before the potentially remote
// revocation lookup.
func (s *Service) VerifyToken(ctx context.Context, raw string, expectedType Type) Verification {
	v := s.verifyToken(ctx, raw, expectedType)
	metrics.ObserveTokenVerification(expectedType.String(), v.Valid)
	return v
}

func (s *Service) verifyToken(ctx context.Context, raw string, expectedType Type) Verification {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodRS256 {
			return nil, errors.New(errInvalidToken)
		}
		return s.key.Public(), nil
	})
	if err != nil || !parsed.Valid {
		return Verification{Valid: false, Error: errInvalidToken}
	}

	if claims.TokenType != expectedType.String() {
		return Verification{Valid: false, Error: errInvalidToken, JTI: claims.ID}
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil || revoked {
		// Ledger lookup failures deny: revocation is a trust-critical
		// path, so it fails closed.
		return Verification{Valid: false, Error: errTokenRevoked, JTI: claims.ID}
	}

	return Verification{Valid: true, Payload: claims, JTI: claims.ID}
}

// RevokeToken appends to the revocation ledger. Revoking an unknown or
// already-revoked JTI is a no-op.
func (s *Service) RevokeToken(ctx context.Context, jti, reason, revokedBy string) error {
	return s.tokens.Revoke(ctx, store.Revocation{
		JTI:       jti,
		Reason:    reason,
		RevokedBy: revokedBy,
		RevokedAt: time.Now().UTC(),
	})
}

// RevokeSessionTokens revokes every outstanding credential tied to a
// session, optionally narrowed to one user. A full-session revocation
// also closes the session row. Used on logout.
func (s *Service) RevokeSessionTokens(ctx context.Context, sessionID, userID, reason string) error {
	jtis, err := s.tokens.JTIsForSession(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("list session tokens: %w", err)
	}

	now := time.Now().UTC()
	for _, jti := range jtis {
		if err := s.tokens.Revoke(ctx, store.Revocation{
			JTI:       jti,
			SessionID: sessionID,
			UserID:    userID,
			Reason:    reason,
			RevokedAt: now,
		}); err != nil {
			return err
		}
	}

	if userID == "" {
		if err := s.sessions.EndSession(ctx, sessionID); err != nil {
			return fmt.Errorf("end session: %w", err)
		}
	}
	return nil
}

// RefreshToken exchanges a valid refresh token for a new access token.
// The referenced session must exist and still be active.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*Issued, error) {
	v := s.VerifyToken(ctx, refreshToken, TypeRefresh)
	if !v.Valid {
		return nil, ErrInvalidRefreshToken
	}

	session, err := s.sessions.FetchSession(ctx, v.Payload.SessionID)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.Active(time.Now().UTC()) {
		return nil, ErrInvalidRefreshToken
	}

	// Best effort; a failed touch does not block the refresh.
	_ = s.sessions.TouchActivity(ctx, session.ID, time.Now().UTC())

	return s.CreateToken(ctx, v.Payload.Subject, v.Payload.DeviceID, session.ID, v.Payload.TeamID, TypeAccess)
}

// IsTokenRevoked reports whether jti is revoked. Store errors report
// revoked=true; the ledger fails closed.
func (s *Service) IsTokenRevoked(ctx context.Context, jti string) bool {
	revoked, err := s.tokens.IsRevoked(ctx, jti)
	if err != nil {
		return true
	}
	return revoked
}

// PublicKeyPem returns the verifying key in PEM form for external
// collaborators.
func (s *Service) PublicKeyPem() []byte {
	return s.key.PublicPem()
}
