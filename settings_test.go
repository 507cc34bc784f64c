package docsdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_KEY", "USE_SANDBOX", "WEBHOOK_SIGNING_SECRET", "API_URL"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func TestSettingsAPIURL(t *testing.T) {
	assert.Equal(t, APIURLLive, Settings{}.APIURL())
	assert.Equal(t, APIURLSandbox, Settings{Sandbox: true}.APIURL())
	assert.Equal(t, "http://localhost:8080", Settings{Sandbox: true, URL: "http://localhost:8080/"}.APIURL())
}

func TestLoadSettingsFromEnv(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DOCSDK_API_KEY", "key-from-env")
	t.Setenv("DOCSDK_USE_SANDBOX", "true")
	t.Setenv("DOCSDK_WEBHOOK_SIGNING_SECRET", "secret")

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", s.APIKey())
	assert.Equal(t, APIURLSandbox, s.APIURL())
	assert.Equal(t, "secret", s.WebhookSigningSecret())
}

func TestLoadSettingsMissingKey(t *testing.T) {
	clearSettingsEnv(t)

	_, err := LoadSettings("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadSettingsFile(t *testing.T) {
	clearSettingsEnv(t)

	path := filepath.Join(t.TempDir(), "docsdk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: key-from-file\nuse_sandbox: true\n"), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "key-from-file", s.APIKey())
	assert.True(t, s.Sandbox)

	t.Setenv("DOCSDK_API_KEY", "key-from-env")
	s, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", s.APIKey())
}

func TestLoadSettingsPropertiesFile(t *testing.T) {
	clearSettingsEnv(t)

	path := filepath.Join(t.TempDir(), "docsdk.properties")
	require.NoError(t, os.WriteFile(path, []byte("api_key=props-key\nwebhook_signing_secret=props-secret\n"), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "props-key", s.APIKey())
	assert.Equal(t, "props-secret", s.WebhookSigningSecret())
	assert.Equal(t, APIURLLive, s.APIURL())
}

func TestLoadSettingsFromBoundFlags(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DOCSDK_API_KEY", "key-from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-key", "", "")
	require.NoError(t, flags.Parse([]string{"--api-key", "key-from-flag"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyAPIKey, flags.Lookup("api-key")))

	s, err := LoadSettingsFrom(v, "")
	require.NoError(t, err)
	assert.Equal(t, "key-from-flag", s.APIKey())
}

func TestLoadSettingsUnreadableFile(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DOCSDK_API_KEY", "key")

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "read settings file")
}
