package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateValidate_RoundTrip(t *testing.T) {
	tok, err := GenerateJWT("u1", "Pat", "pat@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Pat", claims.DisplayName)
	assert.Equal(t, "pat@example.com", claims.Email)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	tok, err := GenerateJWT("u1", "Pat", "pat@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	tok, err := GenerateJWT("u1", "Pat", "pat@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_Empty(t *testing.T) {
	_, err := ValidateJWT("", testSecret)
	assert.Error(t, err)
}
