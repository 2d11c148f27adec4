package projects

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
)

// IsRecordFile reports whether name is a record document: a YAML file
// that is not a template.
func IsRecordFile(name string) bool {
	if strings.HasPrefix(name, constants.TemplatePrefix) {
		return false
	}
	return slices.Contains(constants.RecordExtensions, strings.ToLower(filepath.Ext(name)))
}

// RecordFiles lists the record documents directly inside dir, sorted by
// file name. A missing directory has no records.
func RecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("list", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsRecordFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.SortFunc(files, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})
	return files, nil
}

// DecodeDocument parses one YAML record. An empty document decodes to an
// empty record; any top level other than a mapping is a parse error.
// Nested mappings always use string keys.
func DecodeDocument(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	m, ok := Plain(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level is %T, expected a mapping", doc)
	}
	return m, nil
}

// ReadDocument reads and decodes the record at path.
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return doc, nil
}

// Plain rewrites decoded YAML so that every mapping has string keys.
func Plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	default:
		return v
	}
}

// LoadProjects reads and normalizes every project record in dir. Skipped
// and fatal records are logged and returned alongside the good ones.
// Only a failure to list dir is returned as an error.
func LoadProjects(dir string, logger *zerolog.Logger) ([]Result[Project], error) {
	return loadDir(dir, "project", Normalize, logger)
}

// LoadPending reads and normalizes every pending record in dir.
func LoadPending(dir string, logger *zerolog.Logger) ([]Result[Pending], error) {
	return loadDir(dir, "pending", NormalizePending, logger)
}

func loadDir[T any](dir, kind string, normalize func(map[string]any, string) Result[T], logger *zerolog.Logger) ([]Result[T], error) {
	logger = logging.OrDefault(logger)

	files, err := RecordFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result[T], 0, len(files))
	for _, path := range files {
		source := filepath.Base(path)
		var r Result[T]
		if doc, err := ReadDocument(path); err != nil {
			r = fatal[T](source, err)
		} else {
			r = normalize(doc, source)
		}

		switch r.Outcome {
		case Skipped:
			logger.Warn().Str("kind", kind).Str("file", source).Str("reason", r.Reason).Msg("Skipping record")
		case Fatal:
			logger.Error().Err(r.Err).Str("kind", kind).Str("file", source).Msg("Failed to load record")
		}
		results = append(results, r)
	}
	return results, nil
}
