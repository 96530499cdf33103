package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	expAt, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.False(t, expAt.IsZero())
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "user")
	require.NoError(t, err)

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateJWT("42", "user")
	require.NoError(t, err)

	InitJWT("another-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	InitJWT("")

	_, err := GenerateJWT("42", "user")
	assert.Error(t, err)
}
