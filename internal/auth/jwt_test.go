package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/households/internal/models"
)

const testSecret = "test-secret-0123456789"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.Generate(&models.User{ID: "u1", Email: "u1@example.com", DisplayName: "Uma"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Identity())
	assert.Equal(t, "u1@example.com", claims.Email)
	assert.Equal(t, "Uma", claims.Name)
}

func TestJWTManager_Validate(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	sign := func(t *testing.T, claims jwt.Claims, secret string) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "subject only",
			token: func(t *testing.T) string {
				return sign(t, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-1"}}, testSecret)
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, &Claims{UserID: "u1"}, "another-secret-9876543210")
			},
			wantErr: true,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, &Claims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				}}, testSecret)
			},
			wantErr: true,
		},
		{
			name: "no identity",
			token: func(t *testing.T) string {
				return sign(t, &Claims{Email: "x@example.com"}, testSecret)
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-jwt" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token(t))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			assert.NoError(t, err)
		})
	}
}
