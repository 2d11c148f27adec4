package app

import (
	"github.com/CameronBrooks11/projects-registry/internal/config"
)

// LoadConfig loads configuration from all sources in order of precedence:
// environment variables, .env files, the config file, then defaults.
// An empty path searches for .registry.yaml. Flags are applied later by
// the root command.
func LoadConfig(path string) (*config.Config, error) {
	var opts []config.Option
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	return config.Load(opts...)
}
