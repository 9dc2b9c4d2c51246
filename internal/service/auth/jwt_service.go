package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the bearer tokens that identify callers.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken parses the token and returns its claims, or ErrInvalidToken,
	// ErrExpiredToken or ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	// UserID is the caller identity the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	TokenType string    `json:"type,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
