// Package docs implements the docs command.
package docs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	catalogdocs "github.com/CameronBrooks11/projects-registry/internal/tools/docs"
	"github.com/CameronBrooks11/projects-registry/pkg/index"
)

// NewCommand creates the docs command.
func NewCommand(app application.Application) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "core",
		Short:   "Write a markdown catalog of the registry",
		Long: `Docs compiles the registry the same way build does and renders it as
PROJECTS.md: a summary table, one section per project type, and the
pending candidates. The index files are not rewritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := app.Paths()
			if outputDir == "" {
				outputDir = p.Dist
			}

			out, err := index.NewCompiler(p, index.WithLogger(app.Logger())).Compile(cmd.Context())
			if err != nil {
				return err
			}
			path, err := catalogdocs.New(
				catalogdocs.WithOutputDir(outputDir),
				catalogdocs.WithLogger(app.Logger()),
			).Generate(cmd.Context(), out.Docs)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for PROJECTS.md (default dist/)")
	return cmd
}
