package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	issued := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	first, err := svc.GenerateJWT(42, RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)
	second, err := svc.GenerateJWT(42, RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(first)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
	assert.NotEmpty(t, claims.Id)

	other, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, claims.Id, other.Id)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	valid := jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix(), Issuer: issuer}

	expired, err := svc.GenerateJWT(7, "USER", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	foreign, err := NewJWTService("other-secret").GenerateJWT(7, "USER", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "Garbage", token: "not.a.token", wantErr: ErrInvalidToken},
		{name: "Expired", token: expired, wantErr: ErrTokenExpired},
		{name: "Another secret", token: foreign, wantErr: ErrInvalidToken},
		{
			name:    "No member id",
			token:   signed(t, jwt.SigningMethodHS256, []byte("test-secret"), &Claims{Role: "USER", StandardClaims: valid}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "Foreign issuer",
			token: signed(t, jwt.SigningMethodHS256, []byte("test-secret"), &Claims{UserID: 7, StandardClaims: jwt.StandardClaims{
				ExpiresAt: valid.ExpiresAt, Issuer: "someone-else",
			}}),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Other HMAC size",
			token:   signed(t, jwt.SigningMethodHS512, []byte("test-secret"), &Claims{UserID: 7, StandardClaims: valid}),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}
