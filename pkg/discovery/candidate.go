package discovery

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/CameronBrooks11/projects-registry/internal/sources/github"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
)

// CandidateID derives the pending record id. Embedding the account keeps
// same-named repositories of different accounts apart.
func CandidateID(account, repo string) string {
	return projects.Slugify(fmt.Sprintf("%s-%s", account, repo))
}

// FileName returns the pending file name for id.
func FileName(id string) string {
	return id + ".yml"
}

// Template is the ordered template record that candidates start from.
type Template yaml.MapSlice

// LoadTemplate reads the candidate template. A missing file yields an
// empty template and found=false; an unparsable one is a configuration
// error.
func LoadTemplate(path string) (tmpl Template, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, false, nil
		}
		return nil, false, errors.NewConfigError("discovery", fmt.Sprintf("reading template %s", path), err)
	}
	var ms yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ms, yaml.UseOrderedMap()); err != nil {
		return nil, false, errors.NewConfigError("discovery", fmt.Sprintf("parsing template %s", path), err)
	}
	return Template(ms), true, nil
}

// Candidate is a repository turned into a pending record.
type Candidate struct {
	ID     string
	Source string
	URL    string
	Record yaml.MapSlice
}

// NewCandidate overlays the repository-specific fields onto tmpl. Keys
// already present in the template keep their position; new keys follow in
// a fixed order.
func NewCandidate(tmpl Template, account string, repo github.Repository) Candidate {
	id := CandidateID(account, repo.Name)
	notes := ""
	if repo.Description != nil {
		notes = strings.TrimSpace(*repo.Description)
	}
	docs := ""
	if repo.Homepage != nil {
		docs = *repo.Homepage
	}

	overlay := yaml.MapSlice{
		{Key: "id", Value: id},
		{Key: "name", Value: repo.Name},
		{Key: "repos", Value: []any{yaml.MapSlice{
			{Key: "host", Value: "github"},
			{Key: "url", Value: repo.HTMLURL},
		}}},
		{Key: "notes", Value: notes},
		{Key: "status", Value: "active"},
		{Key: "maturity", Value: "prototype"},
		{Key: "implementation", Value: []any{"software"}},
		{Key: "links", Value: yaml.MapSlice{
			{Key: "issues", Value: repo.HTMLURL + "/issues"},
			{Key: "docs", Value: docs},
		}},
	}

	return Candidate{
		ID:     id,
		Source: account,
		URL:    repo.HTMLURL,
		Record: overlayMapSlice(yaml.MapSlice(tmpl), overlay),
	}
}

// Marshal renders the candidate record as YAML.
func (c Candidate) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(c.Record, yaml.Indent(2), yaml.IndentSequence(false))
}

func overlayMapSlice(base, overlay yaml.MapSlice) yaml.MapSlice {
	values := make(map[string]any, len(overlay))
	for _, item := range overlay {
		values[fmt.Sprint(item.Key)] = item.Value
	}

	out := make(yaml.MapSlice, 0, len(base)+len(overlay))
	used := make(map[string]bool, len(overlay))
	for _, item := range base {
		key := fmt.Sprint(item.Key)
		if v, ok := values[key]; ok {
			out = append(out, yaml.MapItem{Key: item.Key, Value: v})
			used[key] = true
			continue
		}
		out = append(out, item)
	}
	for _, item := range overlay {
		if !used[fmt.Sprint(item.Key)] {
			out = append(out, item)
		}
	}
	return out
}
