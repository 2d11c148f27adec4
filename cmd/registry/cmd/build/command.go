// Package build implements the build command.
package build

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	"github.com/CameronBrooks11/projects-registry/internal/publish"
	"github.com/CameronBrooks11/projects-registry/pkg/index"
)

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	var s3 publish.S3Config

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Compile the project and pending indexes",
		Long: `Build normalizes every record and writes projects-index.json and
pending-index.json to dist/ and the site theme directory. Records missing
an id or name are skipped with a warning.

With an S3 bucket configured (--s3-bucket or s3.bucket), both documents
are also uploaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := mergeS3(app.Config().S3, s3)
			opts := []index.Option{index.WithLogger(app.Logger())}
			if target.Enabled() {
				dest, err := publish.NewS3(cmd.Context(), target)
				if err != nil {
					return err
				}
				opts = append(opts, index.WithDestination(dest))
			}

			out, written, err := index.NewCompiler(app.Paths(), opts...).Run(cmd.Context())
			if err != nil {
				return err
			}
			for _, w := range written {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d %s)\n", w.Location, w.Count, w.Kind)
			}
			app.Logger().Info().
				Int("projects", out.ProjectTally.OK).
				Int("projects_skipped", out.ProjectTally.Skipped).
				Int("projects_failed", out.ProjectTally.Fatal).
				Int("pending", out.PendingTally.OK).
				Msg("Build complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&s3.Bucket, "s3-bucket", "", "also upload the indexes to this S3 bucket")
	cmd.Flags().StringVar(&s3.Prefix, "s3-prefix", "", "key prefix for uploaded indexes")
	cmd.Flags().StringVar(&s3.Region, "s3-region", "", "S3 region (default us-east-1)")
	cmd.Flags().StringVar(&s3.Endpoint, "s3-endpoint", "", "custom S3-compatible endpoint URL")
	cmd.Flags().BoolVar(&s3.PathStyle, "s3-path-style", false, "use path-style bucket addressing")
	return cmd
}

// mergeS3 overlays non-empty flag values on the configured target.
func mergeS3(base, flags publish.S3Config) publish.S3Config {
	if flags.Bucket != "" {
		base.Bucket = flags.Bucket
	}
	if flags.Prefix != "" {
		base.Prefix = flags.Prefix
	}
	if flags.Region != "" {
		base.Region = flags.Region
	}
	if flags.Endpoint != "" {
		base.Endpoint = flags.Endpoint
	}
	base.PathStyle = base.PathStyle || flags.PathStyle
	return base
}
