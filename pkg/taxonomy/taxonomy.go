// Package taxonomy loads the controlled vocabulary that classifies registry
// records. A taxonomy that is missing, unparsable, or lacks any required
// category is a configuration error: no schema or index may be produced
// from it.
package taxonomy

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

// Category names, in canonical order.
const (
	Types          = "types"
	Implementation = "implementation"
	Artifact       = "artifact"
	Target         = "target"
	Maturity       = "maturity"
	Status         = "status"
)

// Categories lists the required categories in canonical order.
var Categories = []string{Types, Implementation, Artifact, Target, Maturity, Status}

// Taxonomy maps each required category to its ordered allowed values.
type Taxonomy struct {
	values map[string][]string
}

// Values returns the allowed values of category, or nil when unknown.
func (t *Taxonomy) Values(category string) []string {
	if t == nil {
		return nil
	}
	return t.values[category]
}

// Allows reports whether value is a member of category.
func (t *Taxonomy) Allows(category, value string) bool {
	for _, v := range t.Values(category) {
		if v == value {
			return true
		}
	}
	return false
}

// Entry is one category with its values.
type Entry struct {
	Category string
	Values   []string
}

// Entries returns the required categories in canonical order.
func (t *Taxonomy) Entries() []Entry {
	entries := make([]Entry, 0, len(Categories))
	for _, c := range Categories {
		entries = append(entries, Entry{Category: c, Values: t.Values(c)})
	}
	return entries
}

// MarshalJSON emits the required categories in canonical order. Extra
// categories present in the source document are not republished.
func (t *Taxonomy) MarshalJSON() ([]byte, error) {
	return marshalOrdered(t.Entries())
}

// Load reads and checks the taxonomy document at path.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("taxonomy not found: %s", path), err)
		}
		return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("reading %s", path), err)
	}
	return Parse(data)
}

// Parse decodes a taxonomy document and checks every required category.
func Parse(data []byte) (*Taxonomy, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError("taxonomy", "document is not a valid mapping", err)
	}

	t := &Taxonomy{values: make(map[string][]string, len(Categories))}
	for _, category := range Categories {
		list, ok := raw[category].([]any)
		if !ok {
			return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("taxonomy missing list: %s", category), nil)
		}
		if len(list) == 0 {
			return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("taxonomy list is empty: %s", category), nil)
		}
		values := make([]string, 0, len(list))
		for i, item := range list {
			if item == nil {
				return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("%s[%d] is null", category, i), nil)
			}
			values = append(values, fmt.Sprint(item))
		}
		t.values[category] = values
	}
	return t, nil
}

// New builds a taxonomy from explicit values, bypassing file loading.
// Every required category must be supplied and non-empty.
func New(values map[string][]string) (*Taxonomy, error) {
	t := &Taxonomy{values: make(map[string][]string, len(Categories))}
	for _, category := range Categories {
		v, ok := values[category]
		if !ok || len(v) == 0 {
			return nil, errors.NewConfigError("taxonomy", fmt.Sprintf("taxonomy missing list: %s", category), nil)
		}
		t.values[category] = append([]string(nil), v...)
	}
	return t, nil
}
