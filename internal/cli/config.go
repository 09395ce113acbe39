package cli

import (
	"github.com/mcoot/fantasy-keepers/internal/config"
)

// Config holds CLI configuration
type Config struct {
	// Settings start from the environment and .env, then flags override them
	Settings *config.Config
	Output   string
	Verbose  bool

	// loadErr is reported once the command runs so --help still works with a broken environment
	loadErr error
}

// DefaultConfig returns a Config seeded from the environment
func DefaultConfig() *Config {
	settings, err := config.Load()
	if err != nil {
		settings = &config.Config{}
	}
	return &Config{
		Settings: settings,
		Output:   "text",
		loadErr:  err,
	}
}
