package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSessionToken_AndValidate(t *testing.T) {
	secret := "test-secret"

	token, err := CreateSessionToken(secret, 12)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	token, err := CreateSessionToken("secret-a", 12)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret-b")
	require.Error(t, err)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	token, err := CreateSessionToken("secret", -1)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	require.Error(t, err)
}

func TestVerifySecret(t *testing.T) {
	require.True(t, VerifySecret("abc", "abc"))
	require.False(t, VerifySecret("abc", "abd"))
	require.False(t, VerifySecret("", "abc"))
	require.False(t, VerifySecret("abc", ""))
	require.False(t, VerifySecret("", ""))
}
