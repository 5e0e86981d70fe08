package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; environment
// variables use the SF_ prefix (SF_MODE, SF_LOG_LEVEL, ...).
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("mode", ModeProduction)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("limits.max_rules", 256)
	v.SetDefault("limits.max_pattern_length", 1024)

	v.SetEnvPrefix("SF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Mode:             v.GetString("mode"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		MaxRules:         v.GetInt("limits.max_rules"),
		MaxPatternLength: v.GetInt("limits.max_pattern_length"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks mode, log settings, and positive limits.
func validateConfig(cfg *Config) error {
	if cfg.Mode != ModeDevelopment && cfg.Mode != ModeProduction {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDevelopment, ModeProduction, cfg.Mode)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("log_format must be json or text, got %q", cfg.LogFormat)
	}
	if cfg.MaxRules <= 0 {
		return fmt.Errorf("limits.max_rules must be positive, got %d", cfg.MaxRules)
	}
	if cfg.MaxPatternLength <= 0 {
		return fmt.Errorf("limits.max_pattern_length must be positive, got %d", cfg.MaxPatternLength)
	}
	return nil
}
