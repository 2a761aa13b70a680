// Package config loads the settings shared by all commands.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultAPIURL is used when no API URL is configured.
const DefaultAPIURL = "https://api.github.com"

// Config aggregates configuration for the application.
type Config struct {
	// Token authenticates API requests. Empty means anonymous.
	Token string `mapstructure:"token"`
	// APIURL is the root of the GitHub REST API.
	APIURL string `mapstructure:"api_url"`
}

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables. Keys use the prefix
// "GITHUB_REPOS", so "api_url" becomes "GITHUB_REPOS_API_URL". The
// conventional GITHUB_TOKEN and GITHUB_API_URL variables are honored as well.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("GITHUB_REPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("api_url", DefaultAPIURL)
	_ = v.BindEnv("token", "GITHUB_REPOS_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("api_url", "GITHUB_REPOS_API_URL", "GITHUB_API_URL")
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
