package discovery

import (
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
)

// URLSet is the set of repository URLs already present in the registry.
// Matching is exact.
type URLSet map[string]struct{}

// Has reports whether u is known.
func (s URLSet) Has(u string) bool {
	_, ok := s[u]
	return ok
}

// Add records u.
func (s URLSet) Add(u string) {
	if u != "" {
		s[u] = struct{}{}
	}
}

// KnownURLs collects every repos[].url from the record files in dirs. It is
// best effort: unreadable directories and malformed files contribute
// nothing and are never reported as errors.
func KnownURLs(dirs ...string) URLSet {
	set := URLSet{}
	for _, dir := range dirs {
		files, err := projects.RecordFiles(dir)
		if err != nil {
			continue
		}
		for _, path := range files {
			doc, err := projects.ReadDocument(path)
			if err != nil {
				continue
			}
			repos, ok := doc["repos"].([]any)
			if !ok {
				continue
			}
			for _, item := range repos {
				entry, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if u, ok := entry["url"].(string); ok {
					set.Add(u)
				}
			}
		}
	}
	return set
}
