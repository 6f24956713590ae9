package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"roster/auth"

	"go.uber.org/zap"
)

type contextKey string

const UserIDContextKey contextKey = "user_id"

// TokenValidator checks a session token of the given type.
type TokenValidator interface {
	Validate(tokenString, tokenType string) (*auth.Claims, error)
}

// Authenticate requires a bearer access token and stores its user id in the
// request context.
func Authenticate(tokens TokenValidator, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	log = log.Named("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				unauthorized(w, "authentication credentials were not provided")
				return
			}

			claims, err := tokens.Validate(tokenString, auth.AccessToken)
			if err != nil {
				log.Debugw("rejected access token", "error", err)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uint)
	return id, ok
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
