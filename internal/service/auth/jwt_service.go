package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the account.
	GenerateToken(ctx context.Context, accountID int64) (string, error)

	// ValidateToken verifies the token and returns its claims.
	// Fails with ErrInvalidToken (or ErrExpiredToken, which wraps it).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded, verified payload of an access token.
type Claims struct {
	AccountID int64     `json:"uid"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti,omitempty"`
}
