package credentials

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProviderRoundTrip(t *testing.T) {
	provider := NewFileProvider(filepath.Join(t.TempDir(), "credentials.json"))

	_, err := provider.Get("gemini_api_key")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, provider.Set("gemini_api_key", "abc123"))

	value, err := provider.Get("gemini_api_key")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)

	require.NoError(t, provider.Clear("gemini_api_key"))

	_, err = provider.Get("gemini_api_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileProviderPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	require.NoError(t, NewFileProvider(path).Set("key", "value"))

	value, err := NewFileProvider(path).Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestEnvProviderIsReadOnly(t *testing.T) {
	provider := NewEnvProvider()

	t.Setenv("STTOCK_TEST_CREDENTIAL", "from-env")
	value, err := provider.Get("STTOCK_TEST_CREDENTIAL")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	_, err = provider.Get("STTOCK_TEST_CREDENTIAL_UNSET")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, provider.Set("STTOCK_TEST_CREDENTIAL", "x"))
	assert.Error(t, provider.Clear("STTOCK_TEST_CREDENTIAL"))
}
