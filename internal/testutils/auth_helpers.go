package testutils

import (
	"context"
	"fmt"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/service/auth"
	"github.com/google/uuid"
)

// TestJWTSecret is the signing secret used by CreateTestJWTService.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// CreateTestJWTService creates a real JWT service for testing with a pre-configured secret and expiration.
func CreateTestJWTService() (auth.JWTService, error) {
	return auth.NewJWTService(config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
	})
}

// GenerateToken creates a valid JWT for userID signed with TestJWTSecret.
func GenerateToken(userID uuid.UUID) (string, error) {
	jwtService, err := CreateTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create test JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// GenerateAuthHeader creates an Authorization header value with a valid JWT token for testing.
func GenerateAuthHeader(userID uuid.UUID) (string, error) {
	token, err := GenerateToken(userID)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
