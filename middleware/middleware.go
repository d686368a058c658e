package middleware

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
)

const (
	KeyJwtSessionCookieName = "jwt_session"
	bearerPrefix            = "Bearer "
)

// JWTMiddleware admits requests carrying a valid relay token, either as a
// bearer token or in the session cookie, and puts the claims in the context
func JWTMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			http.Error(w, "missing authentication token", http.StatusUnauthorized)
			return
		}

		claims, err := service.ParseRelayToken(tokenString)
		if err != nil {
			log.WithField("remote", r.RemoteAddr).Warn(err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), service.KeyCtxRelayClaims, claims)
		handler(w, r.WithContext(ctx))
	}
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	cookie, err := r.Cookie(KeyJwtSessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
