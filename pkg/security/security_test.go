package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAPIKeyValidator(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.True(t, v.IsValidTMDBKey("0123456789abcdef0123456789ABCDEF"))
	assert.False(t, v.IsValidTMDBKey("0123456789abcdef"))
	assert.False(t, v.IsValidTMDBKey("0123456789abcdef0123456789abcdeg"))

	assert.Equal(t, "abc123", v.SanitizeAPIKey("  abc<1>23\n"))
	assert.Equal(t, "[empty]", v.MaskAPIKey(""))
	assert.Equal(t, "[***]", v.MaskAPIKey("short"))
	assert.Equal(t, "012...DEF", v.MaskAPIKey("0123456789abcdef0123456789ABCDEF"))
	assert.True(t, v.SecureCompare("same", "same"))
	assert.False(t, v.SecureCompare("same", "diff"))
}

func TestPasswordRoundTrip(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := CheckPassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "secret1")
	assert.Error(t, err)
}
