package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 168 * time.Hour
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name    string
		userUID string
		email   string
	}{
		{
			name:    "regular user",
			userUID: "6f1c1d1e-9a51-4c68-9e34-1f2ab33c0001",
			email:   "ana@example.com",
		},
		{
			name:    "email with plus sign",
			userUID: "6f1c1d1e-9a51-4c68-9e34-1f2ab33c0002",
			email:   "ana+study@example.com",
		},
		{
			name:    "cyrillic domain email",
			userUID: "6f1c1d1e-9a51-4c68-9e34-1f2ab33c0003",
			email:   "user@пример.рф",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.email, claims.Email)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not.a.jwt",
		},
		{
			name: "token signed with another key",
			token: func() string {
				other := NewJWTMaker("completely_different_secret", time.Minute)
				tkn, err := other.GenerateToken("uid-1", "a@x.com")
				require.NoError(t, err)
				return tkn
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ParseToken_ExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	token, err := maker.GenerateToken("uid-1", "a@x.com")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
