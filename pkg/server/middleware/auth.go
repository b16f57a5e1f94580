package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/fieldgate/fieldgate/pkg/audit"
	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/identity"
	"github.com/fieldgate/fieldgate/pkg/token"
)

// Authenticator is middleware that validates bearer access tokens and
// stores the resulting Identity on the request context.
type Authenticator struct {
	Tokens *token.Service
	Config *config.Config
}

// NewAuthenticator creates a new bearer token authenticator middleware.
func NewAuthenticator(tokens *token.Service, cfg *config.Config) *Authenticator {
	return &Authenticator{Tokens: tokens, Config: cfg}
}

// ClientIP resolves the caller's IP. X-Forwarded-For is honored only
// when the direct peer is a trusted proxy; otherwise the peer address
// wins.
func ClientIP(r *http.Request, cfg *config.Config) net.IP {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	if cfg != nil && cfg.IsTrustedProxy(peer) {
		forwarded := r.Header.Get("X-Forwarded-For")
		if forwarded != "" {
			// Leftmost entry is the original client.
			first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip
			}
		}
	}

	return net.ParseIP(peer)
}

// Middleware returns an HTTP middleware that validates bearer access
// tokens.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		raw, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		v := a.Tokens.VerifyToken(r.Context(), raw, token.TypeAccess)
		if !v.Valid {
			audit.Log(audit.VerifyEvent{
				ClientIP:     ClientIP(r, a.Config).String(),
				ExpectedType: token.TypeAccess.String(),
				ErrorMessage: v.Error,
			})
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(v.Error))
			return
		}

		id := identity.FromClaims(v.Payload).
			WithRemoteIP(ClientIP(r, a.Config)).
			WithRequestID(r.Header.Get("X-Request-ID"))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
