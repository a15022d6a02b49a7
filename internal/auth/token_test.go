package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken("staff-1", RoleScheduler, "Sam")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, RoleScheduler, claims.Role)
	assert.Equal(t, "Sam", claims.Name)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken("staff-1", RoleStaff, "")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 30).ParseToken("not-a-token")
	assert.Error(t, err)
}
