package meiligo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meiligo"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MEILI_URL", "http://localhost:7700/")
	t.Setenv("MEILI_API_KEY", "masterKey")
	t.Setenv("MEILI_TIMEOUT", "45s")

	cfg, err := meiligo.ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7700", cfg.URL, "trailing slash is trimmed")
	assert.Equal(t, "masterKey", cfg.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("MEILI_URL", "http://localhost:7700")
	t.Setenv("MEILI_API_KEY", "")
	t.Setenv("MEILI_TIMEOUT", "")

	cfg, err := meiligo.ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, meiligo.DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.APIKey)
}

func TestConfigFromEnvMissingURL(t *testing.T) {
	t.Setenv("MEILI_URL", "")
	t.Setenv("MEILI_API_KEY", "")
	t.Setenv("MEILI_TIMEOUT", "")

	_, err := meiligo.ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meiligo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: http://search.internal:7700
api_key: masterKey
timeout: 1m30s
`), 0o600))

	cfg, err := meiligo.ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://search.internal:7700", cfg.URL)
	assert.Equal(t, "masterKey", cfg.APIKey)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestConfigFromFileDefaultTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meiligo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://localhost:7700\n"), 0o600))

	cfg, err := meiligo.ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, meiligo.DefaultTimeout, cfg.Timeout)
}

func TestConfigFromFileBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meiligo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://localhost:7700\ntimeout: soon\n"), 0o600))

	_, err := meiligo.ConfigFromFile(path)
	require.Error(t, err)
}

func TestConfigFromFileMissing(t *testing.T) {
	_, err := meiligo.ConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := meiligo.NewClient(meiligo.Config{})
	require.Error(t, err)
}

func TestNewClientNormalizesURL(t *testing.T) {
	client, err := meiligo.NewClient(meiligo.Config{URL: " http://localhost:7700/ "})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7700", client.Config().URL)
	assert.Equal(t, meiligo.DefaultTimeout, client.Config().Timeout)
}
