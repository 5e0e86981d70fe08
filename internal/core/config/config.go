// Package config provides configuration management for smart folder tooling.
package config

// Config holds runtime settings for the rule engine and CLI.
type Config struct {
	// Mode is "development" or "production". Restricted and dangerous
	// custom functions register only in development.
	Mode string

	LogLevel  string
	LogFormat string

	// Evaluation limits enforced at rule set load time.
	MaxRules         int
	MaxPatternLength int
}

// Modes recognized in Config.Mode.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// DefaultConfig returns configuration with default values. Production is
// the default mode: an unset environment must not unlock restricted
// custom functions.
func DefaultConfig() *Config {
	return &Config{
		Mode:             ModeProduction,
		LogLevel:         "info",
		LogFormat:        "json",
		MaxRules:         256,
		MaxPatternLength: 1024,
	}
}

// Development reports whether the configuration is in development mode.
func (c *Config) Development() bool {
	return c.Mode == ModeDevelopment
}
