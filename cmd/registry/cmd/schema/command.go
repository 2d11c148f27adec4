// Package schema implements the schema command.
package schema

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	projectschema "github.com/CameronBrooks11/projects-registry/pkg/schema"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

// NewCommand creates the schema command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		GroupID: "core",
		Short:   "Generate the project JSON Schema from the taxonomy",
		Long: `Generate schema/project.schema.json from data/taxonomy.yml.

The output is deterministic: the same taxonomy always produces the same
bytes, so the schema can be committed and diffed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := Regenerate(app)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema written: %s\n", path)
			return nil
		},
	}
}

// Regenerate writes the schema for the current taxonomy and returns its
// path. The validate command calls it before checking records.
func Regenerate(app application.Application) (string, error) {
	p := app.Paths()
	tax, err := taxonomy.Load(p.Taxonomy)
	if err != nil {
		return "", err
	}
	if _, err := projectschema.Write(p.Schema, tax); err != nil {
		return "", err
	}
	app.Logger().Debug().Str("path", p.Schema).Msg("Schema regenerated")
	return p.Schema, nil
}
