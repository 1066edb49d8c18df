package middleware

import (
	"context"
	"errors"
	"net/http"

	"jobprep/api/internal/utils"
)

const principalKey contextKey = "principal"

// Principal is the authenticated caller, taken from the bearer token.
type Principal struct {
	UserID  string
	Role    string
	IsAdmin bool
}

func (p Principal) HasRole(roles ...string) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// Principal to the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				if errors.Is(err, utils.ErrMissingAuthHeader) {
					utils.JSONError(w, http.StatusUnauthorized, "missing_token", "No token, authorization denied")
				} else {
					utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "Token is not valid")
				}
				return
			}

			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil || userID == "" {
				utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "Token is not valid")
				return
			}

			p := Principal{
				UserID:  userID,
				Role:    utils.GetRoleFromClaims(claims),
				IsAdmin: utils.IsAdminFromClaims(claims),
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole must run after RequireAuth. Callers whose role is not listed get 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				utils.JSONError(w, http.StatusUnauthorized, "missing_token", "No token, authorization denied")
				return
			}
			if !p.HasRole(roles...) {
				utils.JSONError(w, http.StatusForbidden, "forbidden", "Access denied for role "+p.Role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
