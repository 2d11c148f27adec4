// Package app wires configuration, logging and the command tree of the
// registry CLI.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	"github.com/CameronBrooks11/projects-registry/internal/cmd/output"
	"github.com/CameronBrooks11/projects-registry/internal/config"
	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
	"github.com/CameronBrooks11/projects-registry/internal/transport"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
)

// App represents the registry application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *config.Config
	logger *zerolog.Logger

	// GitHub client (lazy-initialized)
	mu     sync.Mutex
	github *github.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default sources; options may replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Paths returns the registry layout under the configured root.
func (a *App) Paths() paths.Paths {
	return paths.New(a.config.Root)
}

// OutputFormat returns the explicit format, or table on a terminal and
// JSON when piped.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// GitHub returns the listing client, creating it on first use.
func (a *App) GitHub() *github.Client {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.github == nil {
		gh := a.config.GitHub
		a.github = github.NewClient(
			github.WithBaseURL(gh.APIURL),
			github.WithPageSize(gh.PageSize),
			github.WithPageDelay(gh.PageDelay),
			github.WithTransport(transport.New(transport.WithTimeout(gh.Timeout))),
			github.WithLogger(a.logger),
		)
	}
	return a.github
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithGitHub sets a custom listing client (useful for testing).
func WithGitHub(client *github.Client) Option {
	return func(a *App) error {
		a.github = client
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
