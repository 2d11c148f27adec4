// Package validation checks raw project records against the generated
// JSON Schema and against cross-record invariants. Every violation is
// collected; validation never stops at the first failure.
package validation

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
	"github.com/CameronBrooks11/projects-registry/pkg/schema"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

const schemaURL = "project.schema.json"

// Validator validates record files against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
	logger *zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New compiles schemaJSON, a draft 2020-12 document, into a Validator.
// Formats such as "uri" are asserted, not just annotated, except on empty
// links entries, which stand for "not filled in yet".
func New(schemaJSON []byte, opts ...Option) (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, errors.WrapResource("load", "schema", schemaURL, err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, errors.WrapResource("compile", "schema", schemaURL, err)
	}

	v := &Validator{schema: compiled}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = logging.OrDefault(v.logger)
	return v, nil
}

// FromTaxonomy generates the project schema from tax and compiles it.
func FromTaxonomy(tax *taxonomy.Taxonomy, opts ...Option) (*Validator, error) {
	data, err := schema.Marshal(schema.Generate(tax))
	if err != nil {
		return nil, err
	}
	return New(data, opts...)
}

// Check validates one decoded record against the schema and returns every
// violation, ordered by instance path. A record with values JSON cannot
// carry, such as NaN, yields a single root issue.
func (v *Validator) Check(doc map[string]any) ([]Issue, error) {
	instance, err := toJSON(doc)
	if err != nil {
		return []Issue{{Path: "(root)", Message: err.Error()}}, nil
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !stderrors.As(err, &verr) {
		return nil, err
	}

	blank := emptyLinks(instance)
	var issues []Issue
	collect(verr, blank, &issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues, nil
}

// Validate checks every record file in dir, in file name order. A file
// that cannot be parsed fails once and gets no further checks. Ids must
// be unique across files; the later file of a pair is flagged.
func (v *Validator) Validate(dir string) (*Report, error) {
	files, err := projects.RecordFiles(dir)
	if err != nil {
		return nil, err
	}
	return v.ValidateFiles(files), nil
}

// ValidateFiles checks the given files in the order supplied.
func (v *Validator) ValidateFiles(files []string) *Report {
	report := &Report{Files: make([]FileReport, 0, len(files))}
	seen := make(map[string]string)

	for _, path := range files {
		fr := FileReport{File: filepath.Base(path), Path: path}

		doc, err := projects.ReadDocument(path)
		if err != nil {
			fr.Err = err
			v.logger.Debug().Err(err).Str("file", fr.File).Msg("Record could not be parsed")
			report.Add(fr)
			continue
		}

		if id, ok := doc["id"].(string); ok && id != "" {
			if first, dup := seen[id]; dup {
				dupErr := &errors.DuplicateIDError{ID: id, File: fr.File, First: first}
				fr.Issues = append(fr.Issues, Issue{Path: "id", Message: dupErr.Error()})
			} else {
				seen[id] = fr.File
			}
		}

		issues, err := v.Check(doc)
		if err != nil {
			issues = append(issues, Issue{Path: "(root)", Message: err.Error()})
		}
		fr.Issues = append(fr.Issues, issues...)

		if !fr.Passed() {
			v.logger.Debug().Str("file", fr.File).Int("issues", len(fr.Issues)).Msg("Record failed validation")
		}
		report.Add(fr)
	}
	return report
}

// collect flattens the leaf causes of a validation error into issues,
// dropping format failures on the pointers in blank.
func collect(verr *jsonschema.ValidationError, blank map[string]bool, issues *[]Issue) {
	if len(verr.Causes) == 0 {
		if blank[verr.InstanceLocation] && strings.HasSuffix(verr.KeywordLocation, "/format") {
			return
		}
		*issues = append(*issues, Issue{Path: instancePath(verr.InstanceLocation), Message: verr.Message})
		return
	}
	for _, cause := range verr.Causes {
		collect(cause, blank, issues)
	}
}

// emptyLinks returns the JSON pointers of links entries holding "".
func emptyLinks(instance any) map[string]bool {
	root, _ := instance.(map[string]any)
	links, _ := root["links"].(map[string]any)
	blank := make(map[string]bool)
	for key, value := range links {
		if s, ok := value.(string); ok && s == "" {
			blank["/links/"+pointerEscaper.Replace(key)] = true
		}
	}
	return blank
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// instancePath converts a JSON pointer to the slash path used in reports.
func instancePath(pointer string) string {
	p := strings.TrimPrefix(pointer, "/")
	if p == "" {
		return "(root)"
	}
	p = strings.ReplaceAll(p, "~1", "/")
	return strings.ReplaceAll(p, "~0", "~")
}

// toJSON converts a decoded YAML record into the value space the schema
// validator understands: objects, arrays, strings, json.Number, bools
// and nulls.
func toJSON(doc map[string]any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("record is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
