// Package config loads registry CLI settings from a config file, .env
// files and REGISTRY_-prefixed environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/CameronBrooks11/projects-registry/internal/publish"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "REGISTRY"

// Config holds the CLI configuration.
type Config struct {
	// Global flags
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=table json yaml wide"`

	// Config file actually read, if any
	ConfigFile string `mapstructure:"-"`

	// Registry root; every layout path is relative to it
	Root string `mapstructure:"root"`

	// Logging configuration
	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=auto json console text"`
	LogOutput string `mapstructure:"log_output"`

	GitHub GitHub `mapstructure:"github"`

	// MetricsFile receives scan counters in the Prometheus text format
	MetricsFile string `mapstructure:"metrics_file"`

	S3 publish.S3Config `mapstructure:"s3"`
}

// GitHub configures the repository listing client.
type GitHub struct {
	APIURL    string        `mapstructure:"api_url" validate:"required,url"`
	PageSize  int           `mapstructure:"page_size" validate:"min=1,max=100"`
	PageDelay time.Duration `mapstructure:"page_delay" validate:"min=0"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	configFile string
	envFiles   []string
}

// WithConfigFile reads path instead of searching for .registry.yaml.
// A missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithEnvFiles replaces the default .env file list.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.envFiles = files
	}
}

// Load builds the configuration. Precedence, highest first:
// 1. Command-line flags (applied later by the caller)
// 2. Environment variables
// 3. .env.local, then .env
// 4. Config file (.registry.yaml in the working or home directory)
// 5. Defaults
func Load(opts ...Option) (*Config, error) {
	l := &loader{envFiles: []string{".env.local", ".env"}}
	for _, opt := range opts {
		opt(l)
	}

	// godotenv never overrides variables that are already set, so the
	// first file listed wins.
	for _, f := range l.envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, errors.NewConfigError("env", "binding environment", err)
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".registry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("config", "decoding settings", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	// NO_COLOR disables color when set to any non-empty value.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("format", "")
	v.SetDefault("root", ".")
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("github.api_url", constants.GitHubAPIURL)
	v.SetDefault("github.page_size", constants.DefaultPageSize)
	v.SetDefault("github.page_delay", constants.PageDelay)
	v.SetDefault("github.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("metrics_file", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
}

// bindEnv adds the unprefixed variables shared with pkg/logging. NO_COLOR
// is read directly in Load.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"log_level":  {"REGISTRY_LOG_LEVEL", "LOG_LEVEL"},
		"log_format": {"REGISTRY_LOG_FORMAT", "LOG_FORMAT"},
		"log_output": {"REGISTRY_LOG_OUTPUT", "LOG_OUTPUT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks setting ranges and enumerations.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewConfigError("config",
			"invalid value for "+strings.ToLower(fe.Namespace())+" ("+fe.Tag()+")", err)
	}
	return errors.NewConfigError("config", err.Error(), err)
}

// ApplyFlags overlays parsed command-line flags. Empty strings leave the
// loaded value in place.
func (c *Config) ApplyFlags(verbose, quiet, noColor bool, format, logLevel, root string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if root != "" {
		c.Root = root
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Root:      ".",
		LogFormat: "auto",
		LogOutput: "stderr",
		GitHub: GitHub{
			APIURL:    constants.GitHubAPIURL,
			PageSize:  constants.DefaultPageSize,
			PageDelay: constants.PageDelay,
			Timeout:   constants.DefaultHTTPTimeout,
		},
	}
}
