// Package discovery proposes new pending records from the repositories of
// configured GitHub accounts. It never touches curated records: it only
// writes new files into the pending directory.
package discovery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/internal/metrics"
	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
)

// Lister pages through the repositories of one account.
type Lister interface {
	Pages(kind github.AccountType, account string) *github.Pager
}

// Scanner runs discovery over every configured source, one after another.
type Scanner struct {
	paths    paths.Paths
	client   Lister
	logger   *zerolog.Logger
	metrics  *metrics.Scan
	progress io.Writer
	dryRun   bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the scanner logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithMetrics records counters into m.
func WithMetrics(m *metrics.Scan) Option {
	return func(s *Scanner) {
		s.metrics = m
	}
}

// WithProgress prints one "Scanning" line per source to w.
func WithProgress(w io.Writer) Option {
	return func(s *Scanner) {
		s.progress = w
	}
}

// WithDryRun reports candidates without writing them.
func WithDryRun(dryRun bool) Option {
	return func(s *Scanner) {
		s.dryRun = dryRun
	}
}

// NewScanner returns a scanner for the registry at p.
func NewScanner(p paths.Paths, client Lister, opts ...Option) *Scanner {
	s := &Scanner{paths: p, client: client}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDefault(s.logger)
	return s
}

// SourceReport is the outcome of scanning one source.
type SourceReport struct {
	Settings Settings
	Pages    int
	Seen     int
	Added    []string
	Skipped  map[Reason]int
	Err      error // the failure that ended pagination, if any
}

// Report is the outcome of a scan.
type Report struct {
	Sources        []SourceReport
	InvalidSources int
	Added          []string // file names, sorted
	TemplateFound  bool
	DryRun         bool
}

// RateLimited reports whether any source ended on a rate-limit answer.
func (r *Report) RateLimited() bool {
	for _, s := range r.Sources {
		if s.Err != nil && errors.IsRateLimited(s.Err) {
			return true
		}
	}
	return false
}

// Scan loads the configuration, template and known URLs, then scans each
// source in order. A failed page ends that source only. The returned error
// is reserved for configuration problems and cancellation.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	cfg, err := LoadConfig(s.paths.ScanConfig)
	if err != nil {
		return nil, err
	}
	tmpl, found, err := LoadTemplate(s.paths.Template)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Warn().Str("path", s.paths.Template).Msg("Candidate template not found, emitting bare records")
	}
	if !s.dryRun {
		if err := os.MkdirAll(s.paths.Pending, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", s.paths.Pending, err)
		}
	}

	settings, invalid := cfg.Resolve(s.logger)
	for range invalid {
		s.metrics.InvalidSource()
	}

	known := KnownURLs(s.paths.Projects, s.paths.Pending)
	s.logger.Debug().Int("urls", len(known)).Msg("Loaded known repository URLs")

	report := &Report{InvalidSources: invalid, TemplateFound: found, DryRun: s.dryRun}
	for _, src := range settings {
		sr, err := s.scanSource(ctx, src, tmpl, known)
		report.Sources = append(report.Sources, sr)
		report.Added = append(report.Added, sr.Added...)
		if err != nil {
			slices.Sort(report.Added)
			return report, err
		}
	}
	slices.Sort(report.Added)
	return report, nil
}

func (s *Scanner) scanSource(ctx context.Context, src Settings, tmpl Template, known URLSet) (SourceReport, error) {
	sr := SourceReport{Settings: src, Skipped: map[Reason]int{}}
	label := src.Label()
	ctx = logging.WithSource(logging.WithLogger(ctx, s.logger), label)
	logger := logging.FromContext(ctx)

	if s.progress != nil {
		_, _ = fmt.Fprintf(s.progress, "Scanning %s (forks=%t, archived=%t)\n", label, src.IncludeForks, src.IncludeArchived)
	}

	for page, err := range s.client.Pages(src.Type, src.Name).All(ctx) {
		if err != nil {
			if ctx.Err() != nil {
				return sr, ctx.Err()
			}
			sr.Err = err
			s.metrics.PageFailed(err)
			logger.Warn().Err(err).
				Int("page", page.Number).
				Bool("rate_limited", errors.IsRateLimited(err)).
				Bool("not_found", errors.IsNotFound(err)).
				Str("kind", metrics.FailureKind(err)).
				Msg("Listing page failed, ending pagination for source")
			break
		}

		sr.Pages++
		sr.Seen += len(page.Repos)
		s.metrics.PageFetched(label, len(page.Repos))
		logger.Debug().Int("page", page.Number).Int("repos", len(page.Repos)).Msg("Fetched listing page")

		for _, repo := range page.Repos {
			name, reason, err := s.consider(ctx, src, repo, tmpl, known)
			if err != nil {
				return sr, err
			}
			if reason != "" {
				sr.Skipped[reason]++
				s.metrics.Skipped(string(reason))
				continue
			}
			sr.Added = append(sr.Added, name)
			s.metrics.Added(label)
		}
	}
	return sr, nil
}

// consider decides whether repo becomes a candidate and writes it. It
// returns the candidate file name, or the reason it was skipped.
func (s *Scanner) consider(ctx context.Context, src Settings, repo github.Repository, tmpl Template, known URLSet) (string, Reason, error) {
	if reason, skip := Filter(repo, src); skip {
		return "", reason, nil
	}
	if known.Has(repo.HTMLURL) {
		return "", ReasonKnownURL, nil
	}

	c := NewCandidate(tmpl, src.Name, repo)
	name := FileName(c.ID)
	target := filepath.Join(s.paths.Pending, name)
	if _, err := os.Stat(target); err == nil {
		return "", ReasonPendingExists, nil
	}

	if !s.dryRun {
		if err := writeCandidate(target, c); err != nil {
			if errors.Is(err, os.ErrExist) {
				return "", ReasonPendingExists, nil
			}
			return "", "", err
		}
	}
	logging.FromContext(logging.WithFile(ctx, name)).Info().Bool("dry_run", s.dryRun).Msg("Added pending candidate")
	return name, "", nil
}

func writeCandidate(path string, c Candidate) error {
	data, err := c.Marshal()
	if err != nil {
		return errors.WrapResource("marshal", "candidate", c.ID, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
