package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func newTestService(t *testing.T, secret string, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}, now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{"valid", config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60}, false},
		{"short secret", config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60}, true},
		{"zero lifetime", config.AuthConfig{JWTSecret: testSecret}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewJWTService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := newTestService(t, testSecret, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, accessTokenType, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	signRaw := func(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		now     time.Time
		secret  string
		wantErr error
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				tok, err := newTestService(t, testSecret, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:    fixedTime,
			secret: testSecret,
		},
		{
			name: "within clock skew",
			token: func(t *testing.T) string {
				tok, err := newTestService(t, testSecret, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:    fixedTime.Add(time.Hour + time.Minute),
			secret: testSecret,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := newTestService(t, testSecret, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime.Add(2 * time.Hour),
			secret:  testSecret,
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				return signRaw(t, jwtCustomClaims{
					UserID:    userID,
					TokenType: accessTokenType,
					RegisteredClaims: jwt.RegisteredClaims{
						NotBefore: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(2 * time.Hour)),
					},
				}, jwt.SigningMethodHS256, []byte(testSecret))
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				tok, err := newTestService(t, testSecret, at(fixedTime)).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return tok
			},
			now:     fixedTime,
			secret:  wrongSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   func(*testing.T) string { return "this.is.not.a.valid.jwt.token" },
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   func(*testing.T) string { return "" },
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrMissingToken,
		},
		{
			name: "wrong signing method",
			token: func(t *testing.T) string {
				return signRaw(t, jwtCustomClaims{
					UserID:    userID,
					TokenType: accessTokenType,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}, jwt.SigningMethodHS512, []byte(testSecret))
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				return signRaw(t, jwtCustomClaims{
					UserID:    userID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}, jwt.SigningMethodHS256, []byte(testSecret))
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return signRaw(t, jwtCustomClaims{
					TokenType: accessTokenType,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}, jwt.SigningMethodHS256, []byte(testSecret))
			},
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, tt.secret, at(tt.now))
			claims, err := svc.ValidateToken(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
