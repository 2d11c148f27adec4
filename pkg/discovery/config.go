package discovery

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

// Config is the discovery configuration document.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Sources  []Source `yaml:"sources"`
}

// Defaults apply to every source that does not override them.
type Defaults struct {
	IncludeForks    bool `yaml:"include_forks"`
	IncludeArchived bool `yaml:"include_archived"`
}

// Source is one account to scan, as written in the configuration.
type Source struct {
	Type            string   `yaml:"type" validate:"required,oneof=user org"`
	Name            string   `yaml:"name" validate:"required"`
	IncludeForks    *bool    `yaml:"include_forks"`
	IncludeArchived *bool    `yaml:"include_archived"`
	Blacklist       []string `yaml:"blacklist"`
}

// Settings is a validated source with defaults applied.
type Settings struct {
	Type            github.AccountType
	Name            string
	IncludeForks    bool
	IncludeArchived bool
	Blacklist       map[string]struct{} // lowercased names and URLs
}

// Label identifies the source in logs and metrics, e.g. "org:acme".
func (s Settings) Label() string {
	return fmt.Sprintf("%s:%s", s.Type, s.Name)
}

// LoadConfig reads the discovery configuration. A missing or unparsable
// file is a configuration error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("discovery", fmt.Sprintf("missing config: %s", path), err)
		}
		return nil, errors.NewConfigError("discovery", fmt.Sprintf("reading %s", path), err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError("discovery", fmt.Sprintf("parsing %s", path), err)
	}
	return &cfg, nil
}

// Resolve validates each source and applies the defaults. Invalid sources
// are logged and left out; their count is returned.
func (c *Config) Resolve(logger *zerolog.Logger) ([]Settings, int) {
	validate := validator.New()

	settings := make([]Settings, 0, len(c.Sources))
	invalid := 0
	for i, src := range c.Sources {
		if err := validate.Struct(src); err != nil {
			invalid++
			logger.Warn().Int("index", i).Str("type", src.Type).Str("name", src.Name).
				Str("problem", describe(err)).Msg("Skipping invalid discovery source")
			continue
		}

		s := Settings{
			Type:            github.AccountType(src.Type),
			Name:            src.Name,
			IncludeForks:    c.Defaults.IncludeForks,
			IncludeArchived: c.Defaults.IncludeArchived,
			Blacklist:       make(map[string]struct{}, len(src.Blacklist)),
		}
		if src.IncludeForks != nil {
			s.IncludeForks = *src.IncludeForks
		}
		if src.IncludeArchived != nil {
			s.IncludeArchived = *src.IncludeArchived
		}
		for _, b := range src.Blacklist {
			s.Blacklist[strings.ToLower(b)] = struct{}{}
		}
		settings = append(settings, s)
	}
	return settings, invalid
}

// describe turns validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
