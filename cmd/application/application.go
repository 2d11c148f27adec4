// Package application provides the interface registry commands depend on.
//
// Commands accept an Application rather than the concrete App so tests can
// pass a Mock:
//
//	mock := &application.Mock{
//	    PathsFunc: func() paths.Paths { return paths.New(t.TempDir()) },
//	}
//	cmd := validate.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/internal/config"
	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
)

// Application provides the application interface that commands need.
// The App struct from cmd/registry/app implements it.
type Application interface {
	// Config returns the loaded configuration with flags applied.
	Config() *config.Config

	// Paths returns the registry layout rooted at the configured root.
	Paths() paths.Paths

	// GitHub returns the repository listing client built from the
	// configuration.
	GitHub() *github.Client

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
