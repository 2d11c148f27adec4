// Package docs renders the registry as a human-readable markdown catalog.
package docs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/index"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
)

// Generator handles catalog generation
type Generator struct {
	outputDir string
	logger    *zerolog.Logger
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithOutputDir sets the directory that receives the catalog file
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithLogger sets the generator logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a new catalog generator
func New(opts ...Option) *Generator {
	g := &Generator{outputDir: constants.DistDir}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.OrDefault(g.logger)
	return g
}

// Generate writes the catalog of docs to {outputDir}/PROJECTS.md and
// returns the written path.
func (g *Generator) Generate(ctx context.Context, docs *index.Documents) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := Render(docs)
	if err != nil {
		return "", errors.WrapResource("render", "catalog", "", err)
	}
	if err := os.MkdirAll(g.outputDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", g.outputDir, err)
	}
	path := filepath.Join(g.outputDir, constants.CatalogDoc)
	if err := os.WriteFile(path, content, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	g.logger.Debug().
		Str("path", path).
		Int("projects", docs.Projects.Count).
		Int("pending", docs.Pending.Count).
		Msg("Wrote markdown catalog")
	return path, nil
}
