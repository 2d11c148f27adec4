package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/build"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/docs"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/list"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/scan"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/schema"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/validate"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/version"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/validation"
)

// flags holds the persistent flag values before they are applied to the
// loaded configuration.
type flags struct {
	configFile string
	root       string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
}

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:     "registry",
		Short:   "Curated projects registry tooling",
		Version: a.version,
		Long: `Registry maintains a curated catalog of software and hardware projects
stored as one YAML file per project.

It generates the JSON Schema from the taxonomy, validates records,
compiles the published JSON indexes, and proposes new pending records
from configured GitHub accounts.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "discovery", Title: "Discovery Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default is ./.registry.yaml or $HOME/.registry.yaml)")
	pf.StringVar(&f.root, "root", "", "registry root directory (default is the working directory)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&f.format, "format", "o", "", "output format: table, json, yaml, wide")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.SetVersionTemplate("registry {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setup applies parsed flags before any command runs. An explicit
// --config reloads the configuration from that file first.
func (a *App) setup(f *flags) error {
	if f.configFile != "" {
		cfg, err := LoadConfig(f.configFile)
		if err != nil {
			return err
		}
		a.config = cfg
	}
	a.config.ApplyFlags(f.verbose, f.quiet, f.noColor, f.format, f.logLevel, f.root)
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(schema.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(docs.NewCommand(a))

	// Discovery commands
	rootCmd.AddCommand(scan.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints err and exits with status 1. A failed validation has
// already printed its summary, so only the exit status is reported.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	var failed *validation.FailedError
	if !errors.As(err, &failed) {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
	os.Exit(1)
}
