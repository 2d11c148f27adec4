// Package index compiles normalized registry records into the published
// JSON index documents and writes them to every destination.
package index

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

// ProjectsIndex is the full registry document.
type ProjectsIndex struct {
	GeneratedAt string             `json:"generated_at"`
	Count       int                `json:"count"`
	Projects    []projects.Project `json:"projects"`
	Taxonomy    *taxonomy.Taxonomy `json:"taxonomy"`
}

// PendingIndex is the lightweight document of candidates awaiting curation.
type PendingIndex struct {
	GeneratedAt string             `json:"generated_at"`
	Count       int                `json:"count"`
	Pending     []projects.Pending `json:"pending"`
}

// Documents holds both compiled indexes and their serialized form. Each
// document is marshalled once; every destination receives the same bytes.
type Documents struct {
	Projects     ProjectsIndex
	Pending      PendingIndex
	ProjectsJSON []byte
	PendingJSON  []byte
}

// Stamp formats t as a generated_at value: UTC, second precision, literal Z.
func Stamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(constants.TimeFormatGenerated)
}

// Build assembles both documents sharing one generated_at stamp.
func Build(at time.Time, tax *taxonomy.Taxonomy, projectList []projects.Project, pendingList []projects.Pending) (*Documents, error) {
	if projectList == nil {
		projectList = []projects.Project{}
	}
	if pendingList == nil {
		pendingList = []projects.Pending{}
	}

	stamp := Stamp(at)
	docs := &Documents{
		Projects: ProjectsIndex{
			GeneratedAt: stamp,
			Count:       len(projectList),
			Projects:    projectList,
			Taxonomy:    tax,
		},
		Pending: PendingIndex{
			GeneratedAt: stamp,
			Count:       len(pendingList),
			Pending:     pendingList,
		},
	}

	var err error
	if docs.ProjectsJSON, err = Marshal(docs.Projects); err != nil {
		return nil, err
	}
	if docs.PendingJSON, err = Marshal(docs.Pending); err != nil {
		return nil, err
	}
	return docs, nil
}

// Marshal serializes v with two-space indentation and no HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
