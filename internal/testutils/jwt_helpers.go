package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/stockroom-dev/stockroom-api/internal/config"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a signing secret long enough for NewJWTService.
const TestJWTSecret = "test-jwt-secret-that-is-at-least-32-characters"

// TestAuthConfig returns an auth config suitable for tests.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// NewTestJWTService creates a real JWT service using TestAuthConfig. A nil
// clock means time.Now.
func NewTestJWTService(t *testing.T, clock func() time.Time) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTServiceWithClock(TestAuthConfig(), clock)
	require.NoError(t, err)
	return svc
}

// GenerateToken issues a token for accountID.
func GenerateToken(t *testing.T, svc auth.JWTService, accountID int64) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), accountID)
	require.NoError(t, err)
	return token
}

// ExpiredToken issues a token for accountID that expired an hour ago.
func ExpiredToken(t *testing.T, accountID int64) string {
	t.Helper()
	past := NewTestJWTService(t, func() time.Time { return time.Now().Add(-2 * time.Hour) })
	return GenerateToken(t, past, accountID)
}
