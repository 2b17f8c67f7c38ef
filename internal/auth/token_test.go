package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndParseAccessToken(t *testing.T) {
	token, err := IssueAccessToken(secret, "8a8f0c44-0a1c-4a7e-9d0f-6d2e4a1b7c11", "TOURIST", time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "8a8f0c44-0a1c-4a7e-9d0f-6d2e4a1b7c11", claims.UserID)
	assert.Equal(t, "TOURIST", claims.Role)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	expired, err := IssueAccessToken(secret, "u1", "TOURIST", -time.Minute)
	require.NoError(t, err)

	wrongKey, err := IssueAccessToken("other", "u1", "TOURIST", time.Minute)
	require.NoError(t, err)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "u1",
		Role:   "TOURIST",
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	refreshToken, err := refresh.SignedString([]byte(secret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": wrongKey,
		"refresh type": refreshToken,
		"garbage":      "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccessToken(secret, tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
