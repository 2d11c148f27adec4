package docs

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmock "github.com/CameronBrooks11/projects-registry/internal/cmd/application"
	"github.com/CameronBrooks11/projects-registry/internal/testhelper"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/paths"
)

func run(t *testing.T, p paths.Paths, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(&appmock.Mock{PathsFunc: func() paths.Paths { return p }})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDocsCommand(t *testing.T) {
	p := testhelper.Registry(t)

	out, err := run(t, p)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+p.CatalogFile+"\n", out)

	doc := testhelper.ReadFile(t, p.CatalogFile)
	assert.Contains(t, doc, "# Projects Registry")
	assert.Contains(t, doc, "## Pending")
	assert.Contains(t, doc, "Alpha")
	assert.Contains(t, doc, "acme-tools")

	assert.NoFileExists(t, filepath.Join(p.Dist, constants.ProjectsIndex), "indexes are not rewritten")
}

func TestDocsCommandOutputDir(t *testing.T) {
	p := testhelper.Registry(t)
	dir := filepath.Join(t.TempDir(), "site")

	out, err := run(t, p, "--output-dir", dir)
	require.NoError(t, err)

	want := filepath.Join(dir, constants.CatalogDoc)
	assert.Equal(t, "Wrote "+want+"\n", out)
	assert.FileExists(t, want)
}
