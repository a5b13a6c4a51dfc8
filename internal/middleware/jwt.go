package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
	"github.com/vaughan-dsouza/GoTodo/internal/utils"
)

// accessTokenCookie carries the credential for page-style clients;
// API clients use the Authorization header.
const accessTokenCookie = "access_token"

const authFailedDetail = "Authentication Failed"

// Auth resolves the bearer credential into claims. Every failure mode
// (absent, malformed, bad signature, expired) gets the same 401 so the
// response never leaks which check tripped.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.Error(w, http.StatusUnauthorized, authFailedDetail)
				return
			}

			claims, err := utils.VerifyToken(token, secret)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, authFailedDetail)
				return
			}

			ctx := context.WithValue(r.Context(), utils.CtxClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group on an exact role. Runs after Auth.
// A wrong role answers 401, same as a missing identity.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok || claims.Role != role {
				utils.Error(w, http.StatusUnauthorized, authFailedDetail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFrom pulls the resolved claims out of the request context.
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(utils.CtxClaimsKey).(*utils.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}

	if c, err := r.Cookie(accessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}
