package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecret_Empty(t *testing.T) {
	require.Error(t, InitJWTSecret(""))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	tokenString, err := GenerateAccessToken(42, "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "asha@example.com", claims["email"])
	assert.Equal(t, "access", claims["type"])
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	tokenString, err := GenerateRefreshToken(42)
	require.NoError(t, err)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
	assert.NotContains(t, claims, "email")
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	require.NoError(t, InitJWTSecret("first-secret"))

	tokenString, err := GenerateAccessToken(1, "a@b.c")
	require.NoError(t, err)

	require.NoError(t, InitJWTSecret("second-secret"))

	_, err = VerifyJWT(tokenString)
	require.Error(t, err)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	_, err := VerifyJWT("not.a.token")
	require.Error(t, err)
}
