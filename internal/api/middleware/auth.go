package middleware

import (
	"context"
	"errors"
	"net/http"
	"social_feed/internal/app/service"
	"social_feed/internal/common"
	"social_feed/internal/common/security"
	"social_feed/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserCtxKey contextKey = "currentUser"

// Authenticator rejects requests without a valid bearer token and loads the
// token's user into the request context. It expects jwtauth.Verifier to
// have run earlier in the chain.
func Authenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
				unauthorized(w, "Not authenticated")
				return
			}
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			email, err := security.GetSubjectFromClaims(claims)
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			user, err := authService.CurrentUser(r.Context(), email)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					w.Header().Set("WWW-Authenticate", "Bearer")
				}
				common.RespondWithDomainError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	common.RespondWithError(w, http.StatusUnauthorized, message)
}

// GetUserFromContext returns the user placed in ctx by Authenticator.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok && user != nil
}
