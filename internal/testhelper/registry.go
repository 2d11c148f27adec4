// Package testhelper builds throwaway registries for command and pipeline
// tests.
package testhelper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
)

// Taxonomy is a small taxonomy covering every required category.
const Taxonomy = `types: [library, tool]
implementation: [software, hardware]
artifact: [binary, package]
target: [linux, web]
maturity: [prototype, stable]
status: [active, archived]
`

// Template is the candidate template written under data/projects.
const Template = `id: ""
name: ""
type: tool
notes: ""
`

// Alpha is a complete, valid project record.
const Alpha = `id: alpha
name: Alpha
type: tool
implementation: [software]
artifact: [binary]
maturity: stable
status: active
repos:
  - host: github
    url: https://github.com/acme/alpha
tags: [cli]
notes: First project.
`

// Gamma is a minimal valid project record.
const Gamma = `id: gamma
name: Gamma
type: library
`

// AcmeTools is a pending candidate record.
const AcmeTools = `id: acme-tools
name: tools
repos:
  - host: github
    url: https://github.com/acme/tools
`

// Registry writes a registry holding the taxonomy, the template, two valid
// projects and one pending candidate, and returns its layout.
func Registry(t *testing.T) paths.Paths {
	t.Helper()

	p := paths.New(t.TempDir())
	WriteFile(t, p.Taxonomy, Taxonomy)
	WriteFile(t, p.Template, Template)
	WriteProject(t, p, "alpha.yml", Alpha)
	WriteProject(t, p, "gamma.yml", Gamma)
	WritePending(t, p, "acme-tools.yml", AcmeTools)
	return p
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteProject writes a curated record named name.
func WriteProject(t *testing.T, p paths.Paths, name, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(p.Projects, name), content)
}

// WritePending writes a pending record named name.
func WritePending(t *testing.T, p paths.Paths, name, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(p.Pending, name), content)
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
