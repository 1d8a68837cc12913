package middleware

import (
	"context"
	"errors"
	"net/http"

	"runboard/internal/common"
	"runboard/internal/common/security"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	UserCtxKey     contextKey = "user"
)

// Authenticator requires a verified token of the given type (see
// jwtauth.Verifier) and stores its subject in the request context.
func Authenticator(tokenType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}
			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			kind, err := security.GetTokenTypeFromClaims(claims)
			if err != nil || kind != tokenType {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token type")
				return
			}
			username, err := security.GetUsernameFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard resolves the authenticated username to a stored account. Roles are
// always read from the store so a promotion takes effect immediately.
type Guard struct {
	users repository.UserRepository
}

func NewGuard(users repository.UserRepository) *Guard {
	return &Guard{users: users}
}

// LoadUser must run after Authenticator.
func (g *Guard) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetUsernameFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}
		user, err := g.users.FindByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "User not found")
				return
			}
			common.RespondWithDomainError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits only users whose role is exactly role. There is no
// hierarchy: an admin does not pass a moderator check.
func RequireRole(role, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok || user.Role != role {
				common.RespondWithError(w, http.StatusForbidden, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ModeratorOnly(next http.Handler) http.Handler {
	return RequireRole(model.RoleModerator, "Moderator access required")(next)
}

func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin, "Admin access required")(next)
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the loaded account from context
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok && user != nil
}
