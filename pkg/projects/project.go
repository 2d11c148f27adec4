// Package projects normalizes raw registry records into the published
// Project and Pending shapes and loads them from record directories.
package projects

// Project is a normalized registry record, ready for publishing.
// Field order is the published key order.
type Project struct {
	ID             string            `json:"id" yaml:"id"`                         // Primary key, ^[a-z0-9-]+$
	Name           string            `json:"name" yaml:"name"`                     // Display name (never empty)
	Slug           string            `json:"slug" yaml:"slug"`                     // Recomputed from ID on every build
	Type           *string           `json:"type" yaml:"type"`                     // Taxonomy "types" value, null when absent
	Implementation []string          `json:"implementation" yaml:"implementation"` // Always a list
	Artifact       []string          `json:"artifact" yaml:"artifact"`             // Always a list
	Target         []string          `json:"target" yaml:"target"`                 // Always a list
	Maturity       *string           `json:"maturity" yaml:"maturity"`
	Status         *string           `json:"status" yaml:"status"`
	Repos          []Repo            `json:"repos" yaml:"repos"`
	Links          map[string]string `json:"links" yaml:"links"` // Named URIs (docs, issues, site, ...)
	Tags           []string          `json:"tags" yaml:"tags"`
	Notes          string            `json:"notes" yaml:"notes"`
	Derived        Derived           `json:"derived" yaml:"derived"` // Always the placeholder
}

// Repo is one source repository of a project.
type Repo struct {
	Host string `json:"host" yaml:"host"` // github, gitlab or other
	URL  string `json:"url" yaml:"url"`
}

// Derived holds externally sourced metrics. They are filled by an
// enrichment step outside the registry; builds always publish the
// placeholder.
type Derived struct {
	Stars           *int     `json:"stars" yaml:"stars"`
	Forks           *int     `json:"forks" yaml:"forks"`
	OpenIssues      *int     `json:"open_issues" yaml:"open_issues"`
	LastCommit      *string  `json:"last_commit" yaml:"last_commit"`
	PrimaryLanguage *string  `json:"primary_language" yaml:"primary_language"`
	Topics          []string `json:"topics" yaml:"topics"`
	ActivityScore   *float64 `json:"activity_score" yaml:"activity_score"`
}

// Placeholder returns the fixed derived block: every metric null, no topics.
func Placeholder() Derived {
	return Derived{Topics: []string{}}
}

// Pending is a discovered candidate awaiting curation.
type Pending struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Notes string `json:"notes" yaml:"notes"`
	Repos []Repo `json:"repos" yaml:"repos"`
}

// Record converts p back to a raw record, the inverse of Normalize.
// Slug and derived are omitted since Normalize never reads them.
func (p Project) Record() map[string]any {
	raw := map[string]any{
		"id":             p.ID,
		"name":           p.Name,
		"implementation": stringsToAny(p.Implementation),
		"artifact":       stringsToAny(p.Artifact),
		"target":         stringsToAny(p.Target),
		"repos":          reposToAny(p.Repos),
		"links":          linksToAny(p.Links),
		"tags":           stringsToAny(p.Tags),
		"notes":          p.Notes,
	}
	for key, v := range map[string]*string{"type": p.Type, "maturity": p.Maturity, "status": p.Status} {
		if v != nil {
			raw[key] = *v
		}
	}
	return raw
}

// URLs returns the repository URLs of p.
func (p Project) URLs() []string {
	return repoURLs(p.Repos)
}

// URLs returns the repository URLs of p.
func (p Pending) URLs() []string {
	return repoURLs(p.Repos)
}

// TypeName returns the project type, or "" when unset.
func (p Project) TypeName() string {
	return deref(p.Type)
}

// StatusName returns the project status, or "" when unset.
func (p Project) StatusName() string {
	return deref(p.Status)
}

// MaturityName returns the project maturity, or "" when unset.
func (p Project) MaturityName() string {
	return deref(p.Maturity)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func repoURLs(repos []Repo) []string {
	urls := make([]string, 0, len(repos))
	for _, r := range repos {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func reposToAny(repos []Repo) []any {
	out := make([]any, len(repos))
	for i, r := range repos {
		out[i] = map[string]any{"host": r.Host, "url": r.URL}
	}
	return out
}

func linksToAny(links map[string]string) map[string]any {
	out := make(map[string]any, len(links))
	for k, v := range links {
		out[k] = v
	}
	return out
}
