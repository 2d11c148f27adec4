package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
	"github.com/CameronBrooks11/projects-registry/pkg/validation"
)

const taxonomyDoc = `types: [library, tool]
implementation: [software, hardware]
artifact: [binary, package]
target: [linux, web]
maturity: [prototype, stable]
status: [active, archived]
`

var fixedClock = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 890, time.FixedZone("X", 3600)) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newRegistry(t *testing.T) paths.Paths {
	t.Helper()
	p := paths.New(t.TempDir())
	writeFile(t, p.Taxonomy, taxonomyDoc)
	writeFile(t, filepath.Join(p.Projects, "alpha.yml"), `id: alpha
name: Alpha
type: tool
implementation: [software]
artifact: [binary]
status: active
repos:
  - host: github
    url: https://github.com/acme/alpha
links:
  docs: https://alpha.dev
tags: [cli]
notes: First project.
`)
	writeFile(t, filepath.Join(p.Projects, "beta.yml"), "name: Beta has no id\n")
	writeFile(t, filepath.Join(p.Projects, "gamma.yml"), "id: gamma\nname: Gamma\ntype: library\n")
	writeFile(t, p.Template, "id: \"\"\nname: \"\"\n")
	writeFile(t, filepath.Join(p.Pending, "acme-tools.yml"), `id: acme-tools
name: tools
notes: Handy tools
status: active
repos:
  - host: github
    url: https://github.com/acme/tools
`)
	return p
}

func TestStamp(t *testing.T) {
	assert.Equal(t, "2025-03-04T04:06:07Z", Stamp(fixedClock()))
}

func TestCompilerRun(t *testing.T) {
	p := newRegistry(t)
	tl := logging.NewTestLogger(t)
	c := NewCompiler(p, WithClock(fixedClock), WithLogger(tl.Logger))

	out, written, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, projects.Tally{OK: 2, Skipped: 1}, out.ProjectTally)
	assert.Equal(t, projects.Tally{OK: 1}, out.PendingTally)
	tl.AssertContains(t, "beta.yml")
	tl.AssertContains(t, `"operation":"compile"`)
	tl.AssertContains(t, `"operation":"publish"`)

	require.Len(t, written, 4)
	assert.Equal(t, filepath.Join(p.Dist, "projects-index.json"), written[0].Location)
	assert.Equal(t, filepath.Join(p.Theme, "projects-index.json"), written[1].Location)
	assert.Equal(t, filepath.Join(p.Dist, "pending-index.json"), written[2].Location)
	assert.Equal(t, "pending", written[3].Kind)
	assert.Equal(t, 2, written[0].Count)

	for _, name := range []string{"projects-index.json", "pending-index.json"} {
		dist, err := os.ReadFile(filepath.Join(p.Dist, name))
		require.NoError(t, err)
		site, err := os.ReadFile(filepath.Join(p.Theme, name))
		require.NoError(t, err)
		assert.Equal(t, dist, site, name)
	}

	var doc map[string]any
	data, err := os.ReadFile(filepath.Join(p.Dist, "projects-index.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2025-03-04T04:06:07Z", doc["generated_at"])
	assert.EqualValues(t, 2, doc["count"])
	assert.Len(t, doc["projects"], 2)
	assert.Contains(t, string(data), `"taxonomy": {
    "types"`)

	var pending PendingIndex
	data, err = os.ReadFile(filepath.Join(p.Theme, "pending-index.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &pending))
	assert.Equal(t, "2025-03-04T04:06:07Z", pending.GeneratedAt)
	assert.Equal(t, 1, pending.Count)
	assert.Equal(t, "acme-tools", pending.Pending[0].ID)
}

func TestCompilerIdempotent(t *testing.T) {
	p := newRegistry(t)

	first, err := NewCompiler(p, WithClock(fixedClock), WithLogger(logging.NewNopLogger())).Compile(context.Background())
	require.NoError(t, err)
	second, err := NewCompiler(p, WithClock(fixedClock), WithLogger(logging.NewNopLogger())).Compile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Docs.ProjectsJSON, second.Docs.ProjectsJSON)
	assert.Equal(t, first.Docs.PendingJSON, second.Docs.PendingJSON)

	later := func() time.Time { return fixedClock().Add(time.Hour) }
	third, err := NewCompiler(p, WithClock(later), WithLogger(logging.NewNopLogger())).Compile(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Docs.ProjectsJSON, third.Docs.ProjectsJSON)
	assert.Equal(t,
		string(first.Docs.ProjectsJSON),
		strings.Replace(string(third.Docs.ProjectsJSON), third.Docs.Projects.GeneratedAt, first.Docs.Projects.GeneratedAt, 1))
}

func TestRoundTripThroughIndex(t *testing.T) {
	p := newRegistry(t)

	v, err := validation.New(mustSchema(t, p), validation.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	report := v.ValidateFiles([]string{filepath.Join(p.Projects, "alpha.yml")})
	require.True(t, report.OK())

	raw, err := projects.ReadDocument(filepath.Join(p.Projects, "alpha.yml"))
	require.NoError(t, err)
	normalized := projects.Normalize(raw, "alpha.yml")
	require.Equal(t, projects.OK, normalized.Outcome)

	out, err := NewCompiler(p, WithClock(fixedClock), WithLogger(logging.NewNopLogger())).Compile(context.Background())
	require.NoError(t, err)

	var published ProjectsIndex
	require.NoError(t, json.Unmarshal(out.Docs.ProjectsJSON, &struct {
		Projects *[]projects.Project `json:"projects"`
	}{&published.Projects}))

	var found *projects.Project
	for i := range published.Projects {
		if published.Projects[i].ID == "alpha" {
			found = &published.Projects[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, normalized.Value, *found)
	assert.Equal(t, projects.Placeholder(), found.Derived)
}

func TestCompileMissingTaxonomy(t *testing.T) {
	p := newRegistry(t)
	require.NoError(t, os.Remove(p.Taxonomy))

	_, _, err := NewCompiler(p, WithLogger(logging.NewNopLogger())).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, statErr := os.Stat(p.Dist)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCompileKeepsDuplicates(t *testing.T) {
	p := newRegistry(t)
	writeFile(t, filepath.Join(p.Projects, "zeta.yml"), "id: alpha\nname: Alpha again\ntype: tool\n")

	out, err := NewCompiler(p, WithClock(fixedClock), WithLogger(logging.NewNopLogger())).Compile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Docs.Projects.Count)
}

type memoryDestination map[string][]byte

func (m memoryDestination) Put(_ context.Context, name string, data []byte) (string, error) {
	m[name] = data
	return "mem://" + name, nil
}

func TestExtraDestination(t *testing.T) {
	p := newRegistry(t)
	mem := memoryDestination{}

	out, written, err := NewCompiler(p,
		WithClock(fixedClock),
		WithLogger(logging.NewNopLogger()),
		WithDestination(mem),
	).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, written, 6)
	assert.Equal(t, "mem://projects-index.json", written[2].Location)
	assert.Equal(t, out.Docs.ProjectsJSON, mem["projects-index.json"])
	assert.Equal(t, out.Docs.PendingJSON, mem["pending-index.json"])
}

func TestBuildEmpty(t *testing.T) {
	docs, err := Build(fixedClock(), nil, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, string(docs.ProjectsJSON), `"projects": []`)
	assert.Contains(t, string(docs.PendingJSON), `"pending": []`)
	assert.Equal(t, 0, docs.Pending.Count)
}
