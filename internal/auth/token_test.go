package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureExigeUnSecret(t *testing.T) {
	require.Error(t, Configure("", "tapea-api"))
}

func TestGenerationEtValidation(t *testing.T) {
	require.NoError(t, Configure("secret-de-test", "tapea-api"))

	tok, err := GenerateAccessToken(42, true)
	require.NoError(t, err)

	claims, err := ParseAndValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.EstAdmin)
	assert.Equal(t, "tapea-api", claims.Issuer)
}

func TestTokenFalsifieRejete(t *testing.T) {
	require.NoError(t, Configure("secret-de-test", "tapea-api"))
	tok, err := GenerateAccessToken(42, false)
	require.NoError(t, err)

	_, err = ParseAndValidate(tok + "x")
	require.Error(t, err)
}
