package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewManager("secret", time.Hour)

	tokenString, err := mgr.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := mgr.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	mgr := NewManager("secret", time.Hour)

	_, err := mgr.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tokenString, err := NewManager("secret-a", time.Hour).Generate(1)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Validate(tokenString)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	mgr := NewManager("secret", -time.Minute)

	tokenString, err := mgr.Generate(1)
	require.NoError(t, err)

	_, err = mgr.Validate(tokenString)
	assert.Error(t, err)
}
