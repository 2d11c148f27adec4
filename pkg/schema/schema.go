// Package schema derives the JSON Schema (draft 2020-12) for project records
// from the taxonomy. Output is byte-stable: keys are emitted in a fixed order
// so regenerating from an unchanged taxonomy produces no diff.
package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/CameronBrooks11/projects-registry/internal/utils/ptr"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

// Draft is the meta-schema the generated document declares.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Hosts is the closed set of repository hosts.
var Hosts = []string{"github", "gitlab", "other"}

// Schema is a JSON Schema node. Field order is serialization order.
type Schema struct {
	Schema               string     `json:"$schema,omitempty"`
	Title                string     `json:"title,omitempty"`
	Type                 string     `json:"type,omitempty"`
	Required             []string   `json:"required,omitempty"`
	AdditionalProperties *bool      `json:"additionalProperties,omitempty"`
	Properties           Properties `json:"properties,omitempty"`
	Items                *Schema    `json:"items,omitempty"`
	UniqueItems          bool       `json:"uniqueItems,omitempty"`
	Pattern              string     `json:"pattern,omitempty"`
	MinLength            *int       `json:"minLength,omitempty"`
	Enum                 []string   `json:"enum,omitempty"`
	Format               string     `json:"format,omitempty"`
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties keeps object properties in declaration order.
type Properties []Property

// Get returns the schema of the named property, or nil.
func (p Properties) Get(name string) *Schema {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler, preserving declaration order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		val, err := marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Generate builds the project schema with enums taken from tax.
func Generate(tax *taxonomy.Taxonomy) *Schema {
	return &Schema{
		Schema:               Draft,
		Title:                "Project",
		Type:                 "object",
		Required:             []string{"id", "name", "type"},
		AdditionalProperties: ptr.Bool(false),
		Properties: Properties{
			{"id", &Schema{Type: "string", Pattern: "^[a-z0-9-]+$"}},
			{"name", &Schema{Type: "string", MinLength: ptr.Int(1)}},
			{"type", enum(tax.Values(taxonomy.Types))},
			{"implementation", enumList(tax.Values(taxonomy.Implementation))},
			{"artifact", enumList(tax.Values(taxonomy.Artifact))},
			{"target", enumList(tax.Values(taxonomy.Target))},
			{"maturity", enum(tax.Values(taxonomy.Maturity))},
			{"status", enum(tax.Values(taxonomy.Status))},
			{"repos", &Schema{
				Type: "array",
				Items: &Schema{
					Type:                 "object",
					Required:             []string{"host", "url"},
					AdditionalProperties: ptr.Bool(false),
					Properties: Properties{
						{"host", enum(Hosts)},
						{"url", uri()},
					},
				},
			}},
			{"links", &Schema{
				Type:                 "object",
				AdditionalProperties: ptr.Bool(true),
				Properties: Properties{
					{"docs", uri()},
					{"issues", uri()},
					{"site", uri()},
				},
			}},
			{"tags", &Schema{Type: "array", Items: &Schema{Type: "string"}, UniqueItems: true}},
			{"notes", &Schema{Type: "string"}},
		},
	}
}

// Marshal serializes s with two-space indentation and no HTML escaping.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, errors.WrapResource("marshal", "schema", "", err)
	}
	return buf.Bytes(), nil
}

// Write generates the schema from tax and writes it to path, creating the
// parent directory. It returns the bytes written.
func Write(path string, tax *taxonomy.Taxonomy) ([]byte, error) {
	data, err := Marshal(Generate(tax))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return nil, errors.WrapIO("write", path, err)
	}
	return data, nil
}

// marshal encodes a nested node without escaping HTML, so that patterns
// and URLs survive unchanged inside Properties.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func enum(values []string) *Schema {
	return &Schema{Type: "string", Enum: values}
}

func enumList(values []string) *Schema {
	return &Schema{Type: "array", Items: enum(values), UniqueItems: true}
}

func uri() *Schema {
	return &Schema{Type: "string", Format: "uri"}
}
