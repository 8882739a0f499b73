package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/jwt"
)

type sessionKey struct{}

// Session is the verified caller attached to the request context
type Session struct {
	Identity  report.Identity
	TokenID   string
	ExpiresAt time.Time
}

// AuthRequired runs after jwtauth.Verifier and rejects anything that is not a
// live access token
func AuthRequired(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid session token")
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			c, err := jwt.ClaimsFromMap(claims)
			if err != nil || c.Type != jwt.TokenTypeAccess {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}
			if tokens.IsTokenRevoked(token.JwtID()) {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			ctx := WithSession(r.Context(), Session{
				Identity:  report.Identity{UserID: c.UserID, Role: c.Role},
				TokenID:   token.JwtID(),
				ExpiresAt: token.Expiration(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// IdentityFromContext returns the acting identity set by AuthRequired
func IdentityFromContext(ctx context.Context) (report.Identity, bool) {
	s, ok := SessionFromContext(ctx)
	return s.Identity, ok
}
