package docsdk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DOCSDK"

	KeyAPIKey               = "api_key"
	KeyUseSandbox           = "use_sandbox"
	KeyWebhookSigningSecret = "webhook_signing_secret"
	KeyAPIURL               = "api_url"
)

// SettingsProvider supplies credentials and the API location.
type SettingsProvider interface {
	APIKey() string
	APIURL() string
	WebhookSigningSecret() string
}

// Settings is the plain SettingsProvider used by the loaders below.
type Settings struct {
	Key           string `mapstructure:"api_key"`
	Sandbox       bool   `mapstructure:"use_sandbox"`
	SigningSecret string `mapstructure:"webhook_signing_secret"`
	// URL overrides the live/sandbox choice, mostly for tests and proxies.
	URL string `mapstructure:"api_url"`
}

var _ SettingsProvider = Settings{}

func (s Settings) APIKey() string { return s.Key }

func (s Settings) APIURL() string {
	switch {
	case s.URL != "":
		return strings.TrimRight(s.URL, "/")
	case s.Sandbox:
		return APIURLSandbox
	default:
		return APIURLLive
	}
}

func (s Settings) WebhookSigningSecret() string { return s.SigningSecret }

func (s Settings) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// LoadSettings reads DOCSDK_* environment variables (after loading a .env
// file if one exists) and, when configFile is set, a properties/yaml/json
// file with the same keys. Environment values win over the file.
func LoadSettings(configFile string) (Settings, error) {
	return LoadSettingsFrom(viper.New(), configFile)
}

// LoadSettingsFrom is LoadSettings on a caller-owned viper instance, so flags
// bound to v beforehand take precedence over the environment.
func LoadSettingsFrom(v *viper.Viper, configFile string) (Settings, error) {
	if v == nil {
		v = viper.New()
	}
	_ = godotenv.Load()

	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyUseSandbox, false)
	v.SetDefault(KeyWebhookSigningSecret, "")
	v.SetDefault(KeyAPIURL, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("read settings file %s: %w", configFile, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
