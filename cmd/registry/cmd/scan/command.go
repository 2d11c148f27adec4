// Package scan implements the scan command.
package scan

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CameronBrooks11/projects-registry/cmd/application"
	"github.com/CameronBrooks11/projects-registry/internal/cmd/alerts"
	"github.com/CameronBrooks11/projects-registry/internal/metrics"
	"github.com/CameronBrooks11/projects-registry/pkg/discovery"
)

// NewCommand creates the scan command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		dryRun      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:     "scan",
		GroupID: "discovery",
		Short:   "Propose pending records from configured GitHub accounts",
		Long: `Scan lists the public repositories of every user and organization in
data/github_scan.yml and writes one pending record per new repository to
data/pending. Forks and archived repositories are skipped unless enabled,
private repositories always are, and repositories already known to the
registry are never proposed twice.

No GitHub token is needed. A failed page ends that account's listing and
the scan moves on to the next account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := metrics.NewScan()
			scanner := discovery.NewScanner(app.Paths(), app.GitHub(),
				discovery.WithLogger(app.Logger()),
				discovery.WithMetrics(m),
				discovery.WithProgress(cmd.OutOrStdout()),
				discovery.WithDryRun(dryRun),
			)

			report, err := scanner.Scan(cmd.Context())
			if report != nil {
				notices := alerts.NewWriterTo(cmd.ErrOrStderr(), app.Config().NoColor)
				printReport(cmd.OutOrStdout(), notices, report)
			}
			if err != nil {
				return err
			}

			if metricsFile == "" {
				metricsFile = app.Config().MetricsFile
			}
			if metricsFile != "" {
				if err := m.WriteTextfile(metricsFile); err != nil {
					return err
				}
				app.Logger().Debug().Str("path", metricsFile).Msg("Wrote scan metrics")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report candidates without writing files")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text-format counters to this file")
	return cmd
}

// printReport writes the candidate summary to out and a warning per
// problem to notices.
func printReport(out io.Writer, notices alerts.Writer, r *discovery.Report) {
	if !r.TemplateFound {
		_ = notices.WriteAlert(alerts.NewWarning("candidate template not found, pending records carry only the repository fields"))
	}
	if r.InvalidSources > 0 {
		_ = notices.WriteAlert(alerts.Warningf("%d invalid source(s) skipped", r.InvalidSources))
	}
	for _, s := range r.Sources {
		if s.Err != nil {
			_ = notices.WriteAlert(alerts.Warningf("%s stopped after %d page(s)", s.Settings.Label(), s.Pages).WithError(s.Err))
		}
	}

	if len(r.Added) == 0 {
		_, _ = fmt.Fprintln(out, "No new repos added.")
		return
	}
	verb := "Added"
	if r.DryRun {
		verb = "Would add"
	}
	_, _ = fmt.Fprintf(out, "%s %d pending repos:\n", verb, len(r.Added))
	for _, name := range r.Added {
		_, _ = fmt.Fprintf(out, "  - %s\n", name)
	}
}
