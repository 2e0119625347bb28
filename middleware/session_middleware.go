package middleware

import (
	"context"
	"net/http"

	"github.com/flashapp/flash-api/auth"
	"github.com/flashapp/flash-api/models"
	"github.com/flashapp/flash-api/store"
	"github.com/rs/zerolog"
)

type contextKey string

const userKey contextKey = "user"

// RequireSession resolves the session cookie to a User row and attaches it to
// the request context. Anything short of a valid session is a 401 — the JSON
// equivalent of the UI's redirect to the login page.
func RequireSession(s store.Store, secret []byte, log zerolog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := auth.VerifyToken(cookie.Value, secret)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			user, err := s.GetUserByID(r.Context(), userID)
			if err != nil {
				log.Warn().Uint("user_id", userID).Err(err).Msg("session token for unknown user")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserFrom returns the session user attached by RequireSession.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}
