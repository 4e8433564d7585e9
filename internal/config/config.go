// Package config loads runtime settings for the Lunch Money MCP server
// from the environment and command-line flags.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eshaffer321/lunchmoney-go/internal/types"
)

const (
	keyAPIKey    = "lunch_money_api_key"
	keyBaseURL   = "lunch_money_base_url"
	keyLogLevel  = "log_level"
	keySentryDSN = "sentry_dsn"
)

// Config holds runtime configuration
type Config struct {
	APIKey    string // LUNCH_MONEY_API_KEY
	BaseURL   string // LUNCH_MONEY_BASE_URL, default https://dev.lunchmoney.app
	LogLevel  string // LOG_LEVEL, default info
	SentryDSN string // SENTRY_DSN, Sentry disabled when empty
}

// Load reads configuration from the environment. Flags in fs, when
// non-nil, override the environment: --base-url and --log-level.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyBaseURL, types.DefaultBaseURL)
	v.SetDefault(keyLogLevel, "info")

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{keyAPIKey, keyBaseURL, keyLogLevel, keySentryDSN} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if fs != nil {
		if f := fs.Lookup("base-url"); f != nil {
			if err := v.BindPFlag(keyBaseURL, f); err != nil {
				return nil, err
			}
		}
		if f := fs.Lookup("log-level"); f != nil {
			if err := v.BindPFlag(keyLogLevel, f); err != nil {
				return nil, err
			}
		}
	}

	return &Config{
		APIKey:    strings.TrimSpace(v.GetString(keyAPIKey)),
		BaseURL:   v.GetString(keyBaseURL),
		LogLevel:  strings.ToLower(v.GetString(keyLogLevel)),
		SentryDSN: v.GetString(keySentryDSN),
	}, nil
}

// Validate reports configuration that will make tool calls fail. A missing
// API key is not fatal: the server starts and each call reports it.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return types.ErrMissingAPIKey
	}
	return nil
}
