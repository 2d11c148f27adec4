package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/paths"
	"github.com/CameronBrooks11/projects-registry/pkg/schema"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

func mustSchema(t *testing.T, p paths.Paths) []byte {
	t.Helper()
	tax, err := taxonomy.Load(p.Taxonomy)
	require.NoError(t, err)
	data, err := schema.Write(p.Schema, tax)
	require.NoError(t, err)
	return data
}
