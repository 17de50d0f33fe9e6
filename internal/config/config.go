package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// LogMaxCount bounds the commit lists fetched per status refresh.
	LogMaxCount int `mapstructure:"log_max_count"`
	// ProcessLogLines caps the process-log buffer before truncation.
	ProcessLogLines int `mapstructure:"process_log_lines"`
	// RefreshDebounceMS is the post-save refresh debounce window.
	RefreshDebounceMS int `mapstructure:"refresh_debounce_ms"`
	// ConfirmDestructive prompts before discard.
	ConfirmDestructive bool `mapstructure:"confirm_destructive"`
	// GitTimeoutSeconds bounds any single git invocation.
	GitTimeoutSeconds int `mapstructure:"git_timeout_seconds"`
}

// Debounce returns the refresh debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.RefreshDebounceMS) * time.Millisecond
}

// GitTimeout returns the subprocess timeout as a duration.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutSeconds) * time.Second
}

// Load reads configuration from ~/.config/git-mode/config.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(configDirectory())
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("GITMODE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("log_max_count", 32)
	v.SetDefault("process_log_lines", 5000)
	v.SetDefault("refresh_debounce_ms", 300)
	v.SetDefault("confirm_destructive", true)
	v.SetDefault("git_timeout_seconds", 30)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-mode")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "git-mode")
}
