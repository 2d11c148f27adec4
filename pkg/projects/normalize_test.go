package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"alpha":           "alpha",
		"Alpha Beta":      "alpha-beta",
		"acme-Tools":      "acme-tools",
		"--weird__name--": "weird-name",
		"a..b//c":         "a-b-c",
		"":                "",
		"Ünïcode":         "n-code",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestParseScalarOrList(t *testing.T) {
	v, err := ParseScalarOrList(nil)
	require.NoError(t, err)
	assert.Equal(t, Absent, v.Kind)
	assert.Equal(t, []string{}, v.List())

	v, err = ParseScalarOrList("software")
	require.NoError(t, err)
	assert.Equal(t, Single, v.Kind)
	assert.Equal(t, []string{"software"}, v.List())
	s, ok := v.Scalar()
	assert.True(t, ok)
	assert.Equal(t, "software", s)

	v, err = ParseScalarOrList([]any{"a", "a", 3})
	require.NoError(t, err)
	assert.Equal(t, Multiple, v.Kind)
	assert.Equal(t, []string{"a", "a", "3"}, v.List())
	_, ok = v.Scalar()
	assert.False(t, ok)

	_, err = ParseScalarOrList(map[string]any{"a": 1})
	assert.Error(t, err)
	_, err = ParseScalarOrList([]any{[]any{"nested"}})
	assert.Error(t, err)
}

func fullRecord() map[string]any {
	return map[string]any{
		"id":             "alpha-tool",
		"name":           "Alpha Tool",
		"slug":           "ignored",
		"type":           "tool",
		"implementation": "software",
		"artifact":       []any{"binary", "package"},
		"maturity":       "stable",
		"status":         "active",
		"repos":          []any{map[string]any{"host": "github", "url": "https://github.com/acme/alpha"}},
		"links":          map[string]any{"docs": "https://alpha.dev"},
		"tags":           []any{"cli"},
		"notes":          "A tool.",
		"derived":        map[string]any{"stars": 10},
	}
}

func TestNormalize(t *testing.T) {
	r := Normalize(fullRecord(), "alpha.yml")
	require.Equal(t, OK, r.Outcome)
	p := r.Value

	assert.Equal(t, "alpha-tool", p.ID)
	assert.Equal(t, "alpha-tool", p.Slug)
	assert.Equal(t, "tool", p.TypeName())
	assert.Equal(t, []string{"software"}, p.Implementation)
	assert.Equal(t, []string{"binary", "package"}, p.Artifact)
	assert.Equal(t, []string{}, p.Target)
	assert.Equal(t, []Repo{{Host: "github", URL: "https://github.com/acme/alpha"}}, p.Repos)
	assert.Equal(t, map[string]string{"docs": "https://alpha.dev"}, p.Links)
	assert.Equal(t, Placeholder(), p.Derived)
	assert.Equal(t, "A tool.", p.Notes)
}

func TestNormalizeDefaults(t *testing.T) {
	r := Normalize(map[string]any{"id": "bare", "name": "Bare"}, "bare.yml")
	require.Equal(t, OK, r.Outcome)
	p := r.Value

	assert.Nil(t, p.Type)
	assert.Nil(t, p.Maturity)
	assert.Nil(t, p.Status)
	assert.Equal(t, []string{}, p.Implementation)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, []Repo{}, p.Repos)
	assert.Equal(t, map[string]string{}, p.Links)
	assert.Equal(t, "", p.Notes)
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(fullRecord(), "alpha.yml")
	require.Equal(t, OK, first.Outcome)

	second := Normalize(first.Value.Record(), "alpha.yml")
	require.Equal(t, OK, second.Outcome)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Value.Slug, second.Value.Slug)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := fullRecord()
	Normalize(raw, "alpha.yml")
	assert.Equal(t, fullRecord(), raw)
}

func TestNormalizeSkipsMissingIdentity(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		reason string
	}{
		{"no id", map[string]any{"name": "X"}, "missing id"},
		{"empty name", map[string]any{"id": "x", "name": ""}, "missing name"},
		{"null id", map[string]any{"id": nil, "name": "X"}, "missing id"},
		{"empty record", map[string]any{}, "missing id and name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(tt.raw, "x.yml")
			assert.Equal(t, Skipped, r.Outcome)
			assert.Equal(t, tt.reason, r.Reason)
			assert.Equal(t, "x.yml", r.Source)

			pending := NormalizePending(tt.raw, "x.yml")
			assert.Equal(t, Skipped, pending.Outcome)
		})
	}
}

func TestNormalizeFatalShapes(t *testing.T) {
	tests := map[string]map[string]any{
		"repos scalar":  {"id": "x", "name": "X", "repos": "https://example.com"},
		"repo not map":  {"id": "x", "name": "X", "repos": []any{"https://example.com"}},
		"links list":    {"id": "x", "name": "X", "links": []any{"a"}},
		"status list":   {"id": "x", "name": "X", "status": []any{"active", "archived"}},
		"tags nested":   {"id": "x", "name": "X", "tags": []any{map[string]any{"a": "b"}}},
		"notes mapping": {"id": "x", "name": "X", "notes": map[string]any{"a": "b"}},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			r := Normalize(raw, "x.yml")
			assert.Equal(t, Fatal, r.Outcome)
			assert.Error(t, r.Err)
		})
	}
}

func TestNormalizePending(t *testing.T) {
	r := NormalizePending(fullRecord(), "alpha.yml")
	require.Equal(t, OK, r.Outcome)

	assert.Equal(t, Pending{
		ID:    "alpha-tool",
		Name:  "Alpha Tool",
		Notes: "A tool.",
		Repos: []Repo{{Host: "github", URL: "https://github.com/acme/alpha"}},
	}, r.Value)
	assert.Equal(t, []string{"https://github.com/acme/alpha"}, r.Value.URLs())
}

func TestResultHelpers(t *testing.T) {
	results := []Result[Pending]{
		ok("a.yml", Pending{ID: "a"}),
		skipped[Pending]("b.yml", "missing id"),
		fatal[Pending]("c.yml", assert.AnError),
		ok("d.yml", Pending{ID: "d"}),
	}

	assert.Equal(t, []Pending{{ID: "a"}, {ID: "d"}}, Values(results))
	assert.Equal(t, Tally{OK: 2, Skipped: 1, Fatal: 1}, Count(results))
	assert.Equal(t, "skipped", Skipped.String())
}
