// Package middleware provides the HTTP middleware chain.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/security"
)

// contextKey is the type of request context keys set by this package.
type contextKey string

var (
	userIDContextKey = contextKey("user_id")
	roleContextKey   = contextKey("role")
)

// ErrNoIdentity is returned when the request carries no authenticated user.
var ErrNoIdentity = errors.New("user ID not found in context")

// TokenVerifier resolves bearer tokens. Satisfied by security.JWTVerifier.
type TokenVerifier interface {
	Verify(tokenString string) (*security.Identity, error)
}

// NewAuthMiddleware verifies the bearer token and stores the caller's id and role
// in the request context. Requests without a valid token get 401.
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteUnauthorized(w)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				slog.Debug("rejected access token",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("error", err.Error()),
				)
				WriteUnauthorized(w)
				return
			}

			if info := requestInfoFromContext(r.Context()); info != nil {
				info.userID = id.UserID
			}
			ctx := ContextWithIdentity(r.Context(), id.UserID, id.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the caller has one of roles.
// It must run after NewAuthMiddleware.
func RequireRole(roles ...model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := RoleFromContext(r.Context())
			if err != nil {
				WriteUnauthorized(w)
				return
			}
			if !slices.Contains(roles, role) {
				WriteForbiddenRole(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", ErrNoIdentity
	}
	return userID, nil
}

// RoleFromContext returns the authenticated user's role.
func RoleFromContext(ctx context.Context) (model.Role, error) {
	role, ok := ctx.Value(roleContextKey).(model.Role)
	if !ok || role == "" {
		return "", ErrNoIdentity
	}
	return role, nil
}

// ContextWithUserID stores a user id in ctx. Used by tests and non-HTTP callers.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// ContextWithIdentity stores a user id and role in ctx.
func ContextWithIdentity(ctx context.Context, userID string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, userIDContextKey, userID)
	return context.WithValue(ctx, roleContextKey, role)
}
