package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

// clearEnv unsets variables a developer shell might carry into the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "NO_COLOR",
		"REGISTRY_NO_COLOR", "REGISTRY_ROOT", "REGISTRY_LOG_LEVEL", "REGISTRY_FORMAT",
		"REGISTRY_GITHUB_PAGE_SIZE", "REGISTRY_GITHUB_PAGE_DELAY",
		"REGISTRY_S3_BUCKET", "REGISTRY_METRICS_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, constants.GitHubAPIURL, cfg.GitHub.APIURL)
	assert.Equal(t, constants.DefaultPageSize, cfg.GitHub.PageSize)
	assert.Equal(t, constants.PageDelay, cfg.GitHub.PageDelay)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.False(t, cfg.S3.Enabled())
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".registry.yaml", `root: /srv/registry
format: json
github:
  page_size: 50
  page_delay: 1s
s3:
  bucket: registry-artifacts
  prefix: indexes
  path_style: true
`)

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, "/srv/registry", cfg.Root)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 50, cfg.GitHub.PageSize)
	assert.Equal(t, time.Second, cfg.GitHub.PageDelay)
	assert.Equal(t, "registry-artifacts", cfg.S3.Bucket)
	assert.Equal(t, "indexes", cfg.S3.Prefix)
	assert.True(t, cfg.S3.PathStyle)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, filepath.Join(dir, ".registry.yaml"), cfg.ConfigFile)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "custom.yaml", "github:\n  page_size: 50\n")
	t.Setenv("REGISTRY_GITHUB_PAGE_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(WithConfigFile(path), WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.GitHub.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadNoColorAnyValue(t *testing.T) {
	for _, value := range []string{"yes", "1", "true"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv("NO_COLOR", value)

			cfg, err := Load(WithEnvFiles())
			require.NoError(t, err)
			assert.True(t, cfg.NoColor)
		})
	}

	clearEnv(t)
	t.Chdir(t.TempDir())
	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)
	assert.False(t, cfg.NoColor)

	t.Setenv("REGISTRY_NO_COLOR", "true")
	cfg, err = Load(WithEnvFiles())
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	local := writeFile(t, dir, ".env.local", "REGISTRY_METRICS_FILE=local.prom\n")
	shared := writeFile(t, dir, ".env", "REGISTRY_METRICS_FILE=shared.prom\nREGISTRY_S3_BUCKET=from-env-file\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("REGISTRY_METRICS_FILE")
		_ = os.Unsetenv("REGISTRY_S3_BUCKET")
	})

	cfg, err := Load(WithEnvFiles(local, shared))
	require.NoError(t, err)

	assert.Equal(t, "local.prom", cfg.MetricsFile, ".env.local wins over .env")
	assert.Equal(t, "from-env-file", cfg.S3.Bucket)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(WithConfigFile("does-not-exist.yaml"), WithEnvFiles())
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"page size too large", "REGISTRY_GITHUB_PAGE_SIZE", "500", "pagesize"},
		{"unknown format", "REGISTRY_FORMAT", "xml", "format"},
		{"unknown log level", "REGISTRY_LOG_LEVEL", "loud", "loglevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(WithEnvFiles())
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	cfg.Format = "yaml"

	cfg.ApplyFlags(true, false, true, "", "warn", "/tmp/registry")

	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format, "empty flag keeps loaded value")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/registry", cfg.Root)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
