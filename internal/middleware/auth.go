// internal/middleware/auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/foundermafstat/mafstat2-sub002/internal/auth"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "role"
)

// CookieName is the session cookie carrying the JWT.
const CookieName = "auth_token"

// Require authenticates the session cookie and checks that the caller's
// role is in the allowed set. Missing or invalid tokens get 401, a valid
// token with an insufficient role gets 403. The user id and role are put
// on the request context for the wrapped handler.
//
// An empty allowed set means any authenticated user may pass.
func Require(allowed ...string) func(next http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractCookieToken(r.Header.Get("Cookie"), CookieName)
			if token == "" {
				http.Error(w, "missing auth token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.AuthenticateJWT(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				http.Error(w, "invalid user id in token", http.StatusUnauthorized)
				return
			}

			if len(allowedSet) > 0 && !allowedSet[claims.Role] {
				http.Error(w, "insufficient role", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, userID)
			ctx = context.WithValue(ctx, ctxRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id placed on the context by Require.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ctxUserID).(uuid.UUID)
	return id
}

// Role returns the authenticated role placed on the context by Require.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(ctxRole).(string)
	return role
}

// ExtractCookieToken extracts a named cookie value from a "Cookie" header,
// or returns empty if not found.
func ExtractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
