// Package validate implements the validate command.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	"github.com/CameronBrooks11/projects-registry/cmd/registry/cmd/schema"
	"github.com/CameronBrooks11/projects-registry/internal/cmd/output"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/validation"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [file...]",
		GroupID: "core",
		Short:   "Validate curated project records against the schema",
		Long: `Validate regenerates the schema from the taxonomy, then checks every
record in data/projects (or only the files given) against it. Ids must be
unique across files.

Each file gets an [OK] or [FAIL] line; failures list every violation.
The command exits non-zero when any file fails.`,
		Example: `  registry validate
  registry validate data/projects/widget.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, err := schema.Regenerate(app)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema written: %s\n", schemaPath)

			report, err := Run(app, schemaPath, args)
			if err != nil {
				return err
			}
			printer := output.NewStatusPrinter(cmd.OutOrStdout(), app.Config().NoColor)
			for _, fr := range report.Files {
				printer.File(fr)
			}
			printer.Summary(report)
			return report.Error()
		},
	}
}

// Run validates files against the schema at schemaPath, or the whole
// projects directory when files is empty.
func Run(app application.Application, schemaPath string, files []string) (*validation.Report, error) {
	schemaJSON, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, errors.WrapIO("read", schemaPath, err)
	}
	v, err := validation.New(schemaJSON, validation.WithLogger(app.Logger()))
	if err != nil {
		return nil, errors.WrapResource("compile", "schema", schemaPath, err)
	}
	if len(files) > 0 {
		return v.ValidateFiles(files), nil
	}
	return v.Validate(app.Paths().Projects)
}
