// Package metrics records discovery scan counters with Prometheus and can
// export them in the text exposition format for a node exporter textfile
// collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

const namespace = "registry_scan"

// Failure kinds for page_failures_total.
const (
	FailureRateLimited = "rate_limited"
	FailureHTTP        = "http"
	FailureTransport   = "transport"
)

// Scan holds the counters of one scan run. A nil *Scan discards every
// observation.
type Scan struct {
	registry      *prometheus.Registry
	pages         *prometheus.CounterVec
	seen          *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	added         *prometheus.CounterVec
	failures      *prometheus.CounterVec
	sourcesFailed prometheus.Counter
}

// NewScan creates counters on a private registry.
func NewScan() *Scan {
	s := &Scan{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Listing pages fetched, by source.",
		}, []string{"source"}),
		seen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repositories_seen_total",
			Help:      "Repositories returned by the listing API, by source.",
		}, []string{"source"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repositories_skipped_total",
			Help:      "Repositories not proposed, by reason.",
		}, []string{"reason"}),
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_added_total",
			Help:      "Pending candidates emitted, by source.",
		}, []string{"source"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_failures_total",
			Help:      "Listing pages that ended a source's pagination, by kind.",
		}, []string{"kind"}),
		sourcesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_invalid_total",
			Help:      "Configured sources skipped as invalid.",
		}),
	}
	s.registry.MustRegister(s.pages, s.seen, s.skipped, s.added, s.failures, s.sourcesFailed)
	return s
}

// Registry exposes the underlying registry.
func (s *Scan) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// PageFetched counts one fetched page holding n repositories.
func (s *Scan) PageFetched(source string, n int) {
	if s == nil {
		return
	}
	s.pages.WithLabelValues(source).Inc()
	s.seen.WithLabelValues(source).Add(float64(n))
}

// Skipped counts one repository left out for reason.
func (s *Scan) Skipped(reason string) {
	if s == nil {
		return
	}
	s.skipped.WithLabelValues(reason).Inc()
}

// Added counts one emitted candidate.
func (s *Scan) Added(source string) {
	if s == nil {
		return
	}
	s.added.WithLabelValues(source).Inc()
}

// PageFailed counts a failed page under the kind derived from err.
func (s *Scan) PageFailed(err error) {
	if s == nil {
		return
	}
	s.failures.WithLabelValues(FailureKind(err)).Inc()
}

// InvalidSource counts a configured source that was skipped.
func (s *Scan) InvalidSource() {
	if s == nil {
		return
	}
	s.sourcesFailed.Inc()
}

// FailureKind classifies a page failure: rate limiting (403/429), any
// other HTTP status, or a transport failure with no status at all.
func FailureKind(err error) string {
	var apiErr *errors.APIError
	switch {
	case errors.IsRateLimited(err):
		return FailureRateLimited
	case errors.As(err, &apiErr) && apiErr.StatusCode != 0:
		return FailureHTTP
	default:
		return FailureTransport
	}
}

// WriteTextfile writes every counter to path in the Prometheus text format.
func (s *Scan) WriteTextfile(path string) error {
	if s == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
