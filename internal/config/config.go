// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, then environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ArtifactsPath locates the trained model database.
	ArtifactsPath string `koanf:"artifacts_path"`

	// DefaultTopN is the similar-player count used when a request omits it.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the similar-player count a request may ask for.
	MaxTopN int `koanf:"max_top_n"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		ArtifactsPath: "models/scout.db",
		DefaultTopN:   5,
		MaxTopN:       20,
	}
}
