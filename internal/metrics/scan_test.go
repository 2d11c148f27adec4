package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

func TestScanCounters(t *testing.T) {
	s := NewScan()
	s.PageFetched("org:acme", 3)
	s.PageFetched("org:acme", 2)
	s.Skipped("fork")
	s.Skipped("fork")
	s.Added("org:acme")
	s.InvalidSource()

	assert.Equal(t, 2.0, testutil.ToFloat64(s.pages.WithLabelValues("org:acme")))
	assert.Equal(t, 5.0, testutil.ToFloat64(s.seen.WithLabelValues("org:acme")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.skipped.WithLabelValues("fork")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.added.WithLabelValues("org:acme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.sourcesFailed))
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, FailureRateLimited, FailureKind(errors.NewAPIError("github", 403, "limit")))
	assert.Equal(t, FailureRateLimited, FailureKind(errors.NewAPIError("github", 429, "limit")))
	assert.Equal(t, FailureHTTP, FailureKind(errors.NewAPIError("github", 404, "missing")))
	assert.Equal(t, FailureHTTP, FailureKind(errors.NewNotFoundError("account", "org:ghost", errors.NewAPIError("github", 404, "missing"))))
	assert.Equal(t, FailureHTTP, FailureKind(fmt.Errorf("page 2: %w", errors.NewAPIError("github", 502, "bad gateway"))))
	assert.Equal(t, FailureTransport, FailureKind(&errors.APIError{Service: "github", Message: "connection refused"}))
	assert.Equal(t, FailureTransport, FailureKind(errors.New("boom")))
}

func TestPageFailed(t *testing.T) {
	s := NewScan()
	s.PageFailed(errors.NewAPIError("github", 429, "limit"))
	s.PageFailed(errors.NewAPIError("github", 500, "oops"))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.failures.WithLabelValues(FailureRateLimited)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.failures.WithLabelValues(FailureHTTP)))
}

func TestNilScanIsNoop(t *testing.T) {
	var s *Scan
	s.PageFetched("x", 1)
	s.Skipped("fork")
	s.Added("x")
	s.PageFailed(errors.New("x"))
	s.InvalidSource()
	assert.Nil(t, s.Registry())
	assert.NoError(t, s.WriteTextfile(filepath.Join(t.TempDir(), "scan.prom")))
}

func TestWriteTextfile(t *testing.T) {
	s := NewScan()
	s.PageFetched("user:alice", 4)
	s.Skipped("archived")

	path := filepath.Join(t.TempDir(), "scan.prom")
	require.NoError(t, s.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `registry_scan_pages_fetched_total{source="user:alice"} 1`)
	assert.Contains(t, out, `registry_scan_repositories_seen_total{source="user:alice"} 4`)
	assert.Contains(t, out, `registry_scan_repositories_skipped_total{reason="archived"} 1`)
}
