// Package paths resolves the fixed registry layout against a root directory.
// Every component receives a Paths value rather than reading globals, so a
// test can point the whole pipeline at a temporary directory.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
)

// Paths holds the absolute locations of every registry input and output.
type Paths struct {
	Root        string
	Data        string
	Projects    string
	Pending     string
	Taxonomy    string
	ScanConfig  string
	Template    string
	Schema      string
	Dist        string
	Theme       string
	CatalogFile string
}

// New returns the registry layout rooted at root.
func New(root string) Paths {
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	join := func(rel string) string {
		return filepath.Join(root, filepath.FromSlash(rel))
	}
	return Paths{
		Root:        root,
		Data:        join(constants.DataDir),
		Projects:    join(constants.ProjectsDir),
		Pending:     join(constants.PendingDir),
		Taxonomy:    join(constants.TaxonomyFile),
		ScanConfig:  join(constants.ScanConfig),
		Template:    filepath.Join(join(constants.ProjectsDir), constants.TemplateFile),
		Schema:      join(constants.SchemaFile),
		Dist:        join(constants.DistDir),
		Theme:       join(constants.ThemeDir),
		CatalogFile: filepath.Join(join(constants.DistDir), constants.CatalogDoc),
	}
}

// IndexDirs returns the directories that receive the published indexes,
// build output first.
func (p Paths) IndexDirs() []string {
	return []string{p.Dist, p.Theme}
}

// Rel returns path relative to the root, for display. Paths outside the
// root are returned unchanged.
func (p Paths) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
