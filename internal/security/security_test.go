package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, expiresAt, err := tm.GenerateAccessToken(7, "admin@rent.id", "Admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "admin@rent.id", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
		token, _, err := other.GenerateAccessToken(1, "a@b.c", "A")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		m := &tokenManager{secret: []byte(testSecret), ttl: time.Minute, now: func() time.Time {
			return time.Now().Add(-2 * time.Hour)
		}}
		token, _, err := m.GenerateAccessToken(1, "a@b.c", "A")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongType", func(t *testing.T) {
		claims := AdminClaims{
			AdminID: 1,
			Type:    "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    issuer,
				Audience:  jwt.ClaimStrings{audience},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, CheckPassword(hash, "rahasia123"))
	assert.ErrorIs(t, CheckPassword(hash, "salah"), ErrPasswordMismatch)

	_, err = HashPassword("")
	assert.Error(t, err)
}
