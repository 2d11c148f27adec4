package index

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/internal/publish"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

// Compiler loads the registry from disk and publishes its indexes.
type Compiler struct {
	paths  paths.Paths
	logger *zerolog.Logger
	now    func() time.Time
	extra  []publish.Destination
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the compiler logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithClock replaces the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		c.now = now
	}
}

// WithDestination adds a destination beyond the build and site directories.
func WithDestination(d publish.Destination) Option {
	return func(c *Compiler) {
		c.extra = append(c.extra, d)
	}
}

// NewCompiler returns a compiler for the registry at p.
func NewCompiler(p paths.Paths, opts ...Option) *Compiler {
	c := &Compiler{paths: p, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDefault(c.logger)
	return c
}

// Outcome summarizes one compile: the documents plus what was left out.
type Outcome struct {
	Docs           *Documents
	ProjectTally   projects.Tally
	PendingTally   projects.Tally
	ProjectResults []projects.Result[projects.Project]
	PendingResults []projects.Result[projects.Pending]
}

// Compile loads the taxonomy and every record and builds both documents.
// A taxonomy error is fatal; per-record failures are logged and the
// record is left out.
func (c *Compiler) Compile(ctx context.Context) (*Outcome, error) {
	tax, err := taxonomy.Load(c.paths.Taxonomy)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(logging.WithOperation(logging.WithLogger(ctx, c.logger), "compile"))

	projectResults, err := projects.LoadProjects(c.paths.Projects, logger)
	if err != nil {
		return nil, err
	}
	pendingResults, err := projects.LoadPending(c.paths.Pending, logger)
	if err != nil {
		return nil, err
	}

	docs, err := Build(c.now(), tax, projects.Values(projectResults), projects.Values(pendingResults))
	if err != nil {
		return nil, errors.WrapResource("marshal", "index", "", err)
	}

	out := &Outcome{
		Docs:           docs,
		ProjectTally:   projects.Count(projectResults),
		PendingTally:   projects.Count(pendingResults),
		ProjectResults: projectResults,
		PendingResults: pendingResults,
	}
	logger.Debug().
		Int("projects", out.ProjectTally.OK).
		Int("projects_skipped", out.ProjectTally.Skipped+out.ProjectTally.Fatal).
		Int("pending", out.PendingTally.OK).
		Int("pending_skipped", out.PendingTally.Skipped+out.PendingTally.Fatal).
		Msg("Compiled registry")
	return out, nil
}

// Written describes one published copy of a document.
type Written struct {
	Location string
	Kind     string // "projects" or "pending"
	Count    int
}

// Destinations returns the build directory and site directory destinations
// followed by any extra ones.
func (c *Compiler) Destinations() []publish.Destination {
	return append(publish.Dirs(c.paths.IndexDirs()...), c.extra...)
}

// Publish writes both documents to every destination: the projects index
// everywhere first, then the pending index.
func (c *Compiler) Publish(ctx context.Context, docs *Documents) ([]Written, error) {
	items := []struct {
		name  string
		kind  string
		data  []byte
		count int
	}{
		{constants.ProjectsIndex, "projects", docs.ProjectsJSON, docs.Projects.Count},
		{constants.PendingIndex, "pending", docs.PendingJSON, docs.Pending.Count},
	}

	logger := logging.FromContext(logging.WithOperation(logging.WithLogger(ctx, c.logger), "publish"))
	dests := c.Destinations()
	written := make([]Written, 0, len(items)*len(dests))
	for _, item := range items {
		for _, dest := range dests {
			loc, err := dest.Put(ctx, item.name, item.data)
			if err != nil {
				return written, err
			}
			logger.Debug().Str("location", loc).Int("count", item.count).Msg("Published index")
			written = append(written, Written{Location: loc, Kind: item.kind, Count: item.count})
		}
	}
	return written, nil
}

// Run compiles and publishes in one step.
func (c *Compiler) Run(ctx context.Context) (*Outcome, []Written, error) {
	out, err := c.Compile(ctx)
	if err != nil {
		return nil, nil, err
	}
	written, err := c.Publish(ctx, out.Docs)
	if err != nil {
		return out, written, err
	}
	return out, written, nil
}
