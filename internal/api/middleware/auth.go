package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stockroom-dev/stockroom-api/internal/api/shared"
	"github.com/stockroom-dev/stockroom-api/internal/platform/logger"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
)

// Messages written by Authenticate.
const (
	MsgAuthRequired = "Authentication required"
	MsgInvalidToken = "Invalid or expired token"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate requires an "Authorization: Bearer <token>" header carrying a
// valid token. On success the caller's Identity is attached to the request
// context; on any failure it answers 401 and next is not called.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			log.Debug("rejected request without usable bearer credential",
				slog.String("path", r.URL.Path))
			shared.RespondFail(w, r, http.StatusUnauthorized, MsgAuthRequired, "")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil || claims == nil {
			// The token itself is never logged.
			log.Debug("rejected bearer credential",
				slog.String("path", r.URL.Path),
				slog.Bool("expired", errors.Is(err, auth.ErrExpiredToken)))
			shared.RespondFail(w, r, http.StatusUnauthorized, MsgInvalidToken, "")
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.NewIdentity(*claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from a header of the exact form
// "Bearer <token>". The scheme is case-sensitive and the token must be a
// single non-empty word.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
