package validation

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/logging"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	tax, err := taxonomy.New(map[string][]string{
		taxonomy.Types:          {"library", "tool"},
		taxonomy.Implementation: {"software", "hardware"},
		taxonomy.Artifact:       {"binary"},
		taxonomy.Target:         {"linux"},
		taxonomy.Maturity:       {"prototype", "stable"},
		taxonomy.Status:         {"active", "archived"},
	})
	require.NoError(t, err)

	v, err := FromTaxonomy(tax, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return v
}

func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func paths(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Path
	}
	return out
}

func TestCheckValidRecord(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{
		"id":             "alpha",
		"name":           "Alpha",
		"type":           "tool",
		"implementation": []any{"software"},
		"status":         "active",
		"repos":          []any{map[string]any{"host": "github", "url": "https://github.com/acme/alpha"}},
		"links":          map[string]any{"docs": "https://alpha.dev", "chat": "https://chat.example"},
		"tags":           []any{"cli"},
		"notes":          "",
	})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckEnumViolation(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{"id": "alpha", "name": "Alpha", "type": "tool", "status": "paused"})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "status", issues[0].Path)
	assert.NotEmpty(t, issues[0].Message)
}

func TestCheckCollectsEveryViolation(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{
		"id":             "Bad ID",
		"name":           "",
		"implementation": []any{"software", "software"},
		"repos":          []any{map[string]any{"host": "bitbucket", "url": "not-a-uri"}},
		"extra":          true,
	})
	require.NoError(t, err)

	got := paths(issues)
	assert.Contains(t, got, "(root)")
	assert.Contains(t, got, "id")
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "implementation")
	assert.Contains(t, got, "repos/0/host")
	assert.Contains(t, got, "repos/0/url")
	assert.IsNonDecreasing(t, got)
}

func TestCheckScalarWhereListExpected(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{"id": "alpha", "name": "Alpha", "type": "tool", "implementation": "software"})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "implementation", issues[0].Path)
	assert.Contains(t, issues[0].Message, "expected array")
}

func TestCheckEmptyLinkIsNotAFormatViolation(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{
		"id":    "alpha",
		"name":  "Alpha",
		"type":  "tool",
		"repos": []any{map[string]any{"host": "github", "url": ""}},
		"links": map[string]any{"docs": "", "issues": "not a uri"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"links/issues", "repos/0/url"}, paths(issues))
}

func TestCheckValueOutsideJSON(t *testing.T) {
	v := newValidator(t)
	issues, err := v.Check(map[string]any{"id": "alpha", "name": "Alpha", "type": "tool", "score": math.NaN()})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "(root)", issues[0].Path)
	assert.Contains(t, issues[0].Message, "not representable as JSON")

	report := FileReport{File: "a.yml", Issues: issues}
	assert.NotContains(t, report.String(), "parse error")
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.yml", "id: shared\nname: A\ntype: tool\n")
	writeRecord(t, dir, "b.yml", "id: shared\nname: B\ntype: tool\n")
	writeRecord(t, dir, "c.yml", "id: gamma\nname: C\ntype: tool\nstatus: paused\n")
	writeRecord(t, dir, "d.yml", "id: [broken\n")
	writeRecord(t, dir, "e.yml", "id: epsilon\nname: E\ntype: library\n")
	writeRecord(t, dir, "_template.project.yml", "id: ''\n")

	report, err := newValidator(t).Validate(dir)
	require.NoError(t, err)
	require.Len(t, report.Files, 5)

	assert.True(t, report.Files[0].Passed())

	b := report.Files[1]
	require.Len(t, b.Issues, 1)
	assert.Equal(t, "id", b.Issues[0].Path)
	assert.Equal(t, "duplicate id 'shared' (first defined in a.yml)", b.Issues[0].Message)

	assert.Equal(t, []string{"status"}, paths(report.Files[2].Issues))

	d := report.Files[3]
	assert.Error(t, d.Err)
	assert.Empty(t, d.Issues)

	assert.True(t, report.Files[4].Passed())
	assert.Equal(t, 3, report.Failed)
	assert.False(t, report.OK())
	assert.EqualError(t, report.Error(), "3 file(s) failed validation")
}

func TestDuplicateReportedOncePerLaterFile(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "z.yml", "id: same\nname: Z\ntype: tool\n")
	writeRecord(t, dir, "m.yml", "id: same\nname: M\ntype: tool\n")

	report, err := newValidator(t).Validate(dir)
	require.NoError(t, err)

	assert.True(t, report.Files[0].Passed(), "m.yml sorts first and owns the id")
	assert.Equal(t, "z.yml", report.Files[1].File)
	assert.Len(t, report.Files[1].Issues, 1)
	assert.Equal(t, 1, report.Failed)
}

func TestFileWithSeveralProblemsCountsOnce(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.yml", "id: x\nname: A\ntype: tool\n")
	writeRecord(t, dir, "b.yml", "id: x\nname: B\ntype: nope\nstatus: paused\n")

	report, err := newValidator(t).Validate(dir)
	require.NoError(t, err)
	assert.Len(t, report.Files[1].Issues, 3)
	assert.Equal(t, 1, report.Failed)
}

func TestEmptyDirectoryPasses(t *testing.T) {
	report, err := newValidator(t).Validate(t.TempDir())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.NoError(t, report.Error())
}

func TestFileReportLines(t *testing.T) {
	pass := FileReport{File: "a.yml"}
	assert.Equal(t, []string{"[OK]   a.yml"}, pass.Lines())

	fail := FileReport{File: "b.yml", Issues: []Issue{{Path: "status", Message: "bad"}}}
	assert.Equal(t, []string{"[FAIL] b.yml:", "  - status: bad"}, fail.Lines())

	parse := FileReport{File: "c.yml", Err: assert.AnError}
	assert.Contains(t, parse.String(), "[FAIL] c.yml: parse error:")
}
