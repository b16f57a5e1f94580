package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/signer"
	"github.com/fieldgate/fieldgate/pkg/store"
	"github.com/fieldgate/fieldgate/pkg/token"
)

var testKey *signer.Key

func init() {
	var err error
	testKey, err = signer.GenerateKey()
	if err != nil {
		panic(err)
	}
}

type stubTokenStore struct {
	revoked bool
}

func (s *stubTokenStore) RecordIssued(ctx context.Context, cred store.IssuedCredential) error {
	return nil
}

func (s *stubTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revoked, nil
}

func (s *stubTokenStore) Revoke(ctx context.Context, rev store.Revocation) error { return nil }

func (s *stubTokenStore) JTIsForSession(ctx context.Context, sessionID, userID string) ([]string, error) {
	return nil, nil
}

func (s *stubTokenStore) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (s *stubTokenStore) DeleteIssuedExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTestService(revoked bool) *token.Service {
	return token.NewService(testKey, &stubTokenStore{revoked: revoked}, nil, token.DefaultTTLs())
}

func issueAccessToken(t *testing.T, svc *token.Service) string {
	t.Helper()
	issued, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "team-1", token.TypeAccess)
	require.NoError(t, err)
	return issued.Token
}

func authedRequest(tokenStr string) *http.Request {
	r := httptest.NewRequest("GET", "/whoami", nil)
	if tokenStr != "" {
		r.Header.Set("Authorization", "Bearer "+tokenStr)
	}
	return r
}

func runMiddleware(t *testing.T, a *Authenticator, r *http.Request) (*httptest.ResponseRecorder, *identity.Identity) {
	t.Helper()
	var captured *identity.Identity
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, captured
}

func TestMiddlewareAcceptsValidAccessToken(t *testing.T) {
	svc := newTestService(false)
	a := NewAuthenticator(svc, &config.Config{})

	r := authedRequest(issueAccessToken(t, svc))
	r.Header.Set("X-Request-ID", "req-1")

	rec, id := runMiddleware(t, a, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, id)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "team-1", id.TeamID)
	assert.Equal(t, "req-1", id.RequestID)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	a := NewAuthenticator(newTestService(false), &config.Config{})

	rec, _ := runMiddleware(t, a, authedRequest(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization missing", rec.Body.String())
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	a := NewAuthenticator(newTestService(false), &config.Config{})

	r := httptest.NewRequest("GET", "/whoami", nil)
	r.Header.Set("Authorization", `Token token="abc"`)

	rec, _ := runMiddleware(t, a, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Malformed authorization header", rec.Body.String())
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	a := NewAuthenticator(newTestService(false), &config.Config{})

	rec, _ := runMiddleware(t, a, authedRequest("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", rec.Body.String())
}

func TestMiddlewareRejectsRevokedToken(t *testing.T) {
	svc := newTestService(true)
	a := NewAuthenticator(svc, &config.Config{})

	rec, _ := runMiddleware(t, a, authedRequest(issueAccessToken(t, svc)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", rec.Body.String())
}

func TestMiddlewareRejectsRefreshToken(t *testing.T) {
	svc := newTestService(false)
	a := NewAuthenticator(svc, &config.Config{})

	refresh, err := svc.CreateToken(context.Background(), "user-1", "device-1", "session-1", "", token.TypeRefresh)
	require.NoError(t, err)

	rec, _ := runMiddleware(t, a, authedRequest(refresh.Token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", rec.Body.String())
}

func TestClientIPIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	cfg := &config.Config{}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:4444"
	r.Header.Set("X-Forwarded-For", "10.0.0.1")

	assert.Equal(t, "203.0.113.9", ClientIP(r, cfg).String())
}

func TestClientIPHonorsForwardedForFromTrustedProxy(t *testing.T) {
	cfg := &config.Config{TrustedProxies: []string{"203.0.113.9"}}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:4444"
	r.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")

	assert.Equal(t, "10.0.0.1", ClientIP(r, cfg).String())
}
