package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
)

type sessionKey struct{}

// AuthRequired accepts only access tokens and stores the caller's session
// in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			session := sessionFromClaims(claims)
			if session.Email == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func sessionFromClaims(claims map[string]interface{}) auth.Session {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return auth.Session{
		Email:   str("email"),
		StaffID: str("user_id"),
		Name:    str("name"),
		Branch:  str("branch"),
		Role:    staff.Role(str("role")),
		IsAdmin: isAdmin,
	}
}

// SessionFromContext returns the session stored by AuthRequired.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(auth.Session)
	return session, ok
}

// WithSession is used by tests to bypass token verification.
func WithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// ActorFromContext describes the caller for shift state transitions.
func ActorFromContext(ctx context.Context) attendance.Actor {
	session, _ := SessionFromContext(ctx)
	return attendance.Actor{IsAdmin: session.IsAdmin}
}
