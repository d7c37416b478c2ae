package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashPassword(t *testing.T) {
	hasher := &Bcrypt{Cost: bcrypt.MinCost}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "Plain password", password: "s3cret-pass"},
		{name: "Exactly 72 bytes", password: strings.Repeat("x", 72)},
		{name: "Empty", password: "", wantErr: ErrEmptyPassword},
		{name: "Too long", password: strings.Repeat("x", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, bcrypt.MinCost, cost)
		})
	}
}

func TestBcrypt_DefaultCost(t *testing.T) {
	hash, err := (&Bcrypt{}).HashPassword("member-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcrypt_ComparePassword(t *testing.T) {
	hasher := &Bcrypt{Cost: bcrypt.MinCost}
	hash, err := hasher.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, hasher.ComparePassword(hash, "s3cret-pass"))
	assert.False(t, hasher.ComparePassword(hash, "S3cret-pass"))
	assert.False(t, hasher.ComparePassword("", ""))
	assert.False(t, hasher.ComparePassword("not-a-hash", "s3cret-pass"))
}
