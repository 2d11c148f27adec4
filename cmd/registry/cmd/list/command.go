// Package list implements the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	"github.com/CameronBrooks11/projects-registry/internal/cmd/output"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List normalized projects",
		Long: `List prints the normalized curated projects, or the pending candidates
with --pending. Records that would be skipped by build are left out.`,
		Example: `  registry list
  registry list --format json
  registry list --pending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			p := app.Paths()

			if pending {
				results, err := projects.LoadPending(p.Pending, app.Logger())
				if err != nil {
					return err
				}
				return output.FormatPending(cmd.OutOrStdout(), projects.Values(results), format)
			}

			results, err := projects.LoadProjects(p.Projects, app.Logger())
			if err != nil {
				return err
			}
			return output.FormatProjects(cmd.OutOrStdout(), projects.Values(results), format)
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "list pending candidates instead of curated projects")
	return cmd
}
