// Package constants provides shared constants used throughout the registry:
// file permissions, discovery pacing, and the fixed file names of the
// registry layout.
package constants

import "time"

// Timeout and pacing constants.
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the hosting API
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// PageDelay is the courtesy pause between successive listing pages of one account
	PageDelay = 200 * time.Millisecond
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limits.
const (
	// DefaultPageSize is the per_page value requested from the hosting API
	DefaultPageSize = 100

	// MaxPageSize is the largest per_page value GitHub honors
	MaxPageSize = 100
)

// Hosting API constants.
const (
	// GitHubAPIURL is the public GitHub REST endpoint
	GitHubAPIURL = "https://api.github.com"

	// GitHubAPIVersion pins the REST API version header
	GitHubAPIVersion = "2022-11-28"

	// UserAgent identifies registry scans to the hosting API
	UserAgent = "projects-registry-scanner"
)

// Format constants.
const (
	// TimeFormatGenerated is the generated_at format: UTC, second precision, literal Z
	TimeFormatGenerated = "2006-01-02T15:04:05Z"
)

// Registry layout, relative to the registry root.
const (
	DataDir       = "data"
	ProjectsDir   = "data/projects"
	PendingDir    = "data/pending"
	TaxonomyFile  = "data/taxonomy.yml"
	ScanConfig    = "data/github_scan.yml"
	TemplateFile  = "_template.project.yml"
	SchemaFile    = "schema/project.schema.json"
	DistDir       = "dist"
	ThemeDir      = "site/.vitepress/theme"
	ProjectsIndex = "projects-index.json"
	PendingIndex  = "pending-index.json"
	CatalogDoc    = "PROJECTS.md"
)

// RecordExtensions are the file extensions treated as record documents.
var RecordExtensions = []string{".yml", ".yaml"}

// TemplatePrefix marks files reserved as templates inside record directories.
const TemplatePrefix = "_"
