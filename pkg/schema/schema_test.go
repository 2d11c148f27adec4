package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.New(map[string][]string{
		taxonomy.Types:          {"library", "tool"},
		taxonomy.Implementation: {"software"},
		taxonomy.Artifact:       {"package"},
		taxonomy.Target:         {"linux"},
		taxonomy.Maturity:       {"prototype", "stable"},
		taxonomy.Status:         {"active", "archived"},
	})
	require.NoError(t, err)
	return tax
}

func TestGenerate(t *testing.T) {
	s := Generate(testTaxonomy(t))

	assert.Equal(t, Draft, s.Schema)
	assert.Equal(t, "Project", s.Title)
	assert.Equal(t, []string{"id", "name", "type"}, s.Required)
	require.NotNil(t, s.AdditionalProperties)
	assert.False(t, *s.AdditionalProperties)

	assert.Equal(t, []string{"active", "archived"}, s.Properties.Get("status").Enum)
	assert.Equal(t, []string{"library", "tool"}, s.Properties.Get("type").Enum)

	impl := s.Properties.Get("implementation")
	assert.Equal(t, "array", impl.Type)
	assert.True(t, impl.UniqueItems)
	assert.Equal(t, []string{"software"}, impl.Items.Enum)

	repo := s.Properties.Get("repos").Items
	assert.Equal(t, Hosts, repo.Properties.Get("host").Enum)
	assert.Equal(t, "uri", repo.Properties.Get("url").Format)

	links := s.Properties.Get("links")
	assert.True(t, *links.AdditionalProperties)
	assert.Equal(t, "uri", links.Properties.Get("docs").Format)
	assert.Nil(t, s.Properties.Get("slug"))
}

func TestMarshalDeterministic(t *testing.T) {
	tax := testTaxonomy(t)

	first, err := Marshal(Generate(tax))
	require.NoError(t, err)
	second, err := Marshal(Generate(tax))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshalKeyOrder(t *testing.T) {
	data, err := Marshal(Generate(testTaxonomy(t)))
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "{\n  \"$schema\": \"https://json-schema.org/draft/2020-12/schema\",\n  \"title\": \"Project\",\n  \"type\": \"object\","))
	assert.Contains(t, out, `"pattern": "^[a-z0-9-]+$"`)

	order := []string{`"id"`, `"name"`, `"type": {`, `"implementation"`, `"artifact"`, `"target"`,
		`"maturity"`, `"status"`, `"repos"`, `"links"`, `"tags"`, `"notes"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		require.NotEqual(t, -1, idx, key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["additionalProperties"])
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema", "project.schema.json")

	data, err := Write(path, testTaxonomy(t))
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	again, err := Write(path, testTaxonomy(t))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}
