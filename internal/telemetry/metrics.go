// Package telemetry exports Prometheus metrics for the curation pipeline.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all curator Prometheus metrics.
type Metrics struct {
	// Verification outcomes, labeled valid/invalid.
	VerificationsTotal *prometheus.CounterVec
	// Candidates rejected by the duration policy, labeled by entry path.
	PolicyRejections *prometheus.CounterVec
	// Upstream platform failures, labeled by operation.
	UpstreamErrors *prometheus.CounterVec
	// Verifications that classified without a transcript.
	TranscriptFallbacks prometheus.Counter
	// Classification latency.
	ClassifyDuration prometheus.Histogram
	// Surviving results per search.
	SearchResults prometheus.Histogram
}

// Provider wraps metric registration and the /metrics handler.
type Provider struct {
	Metrics *Metrics
}

// NewProvider registers all metrics on the default registry.
func NewProvider() *Provider {
	return &Provider{Metrics: &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_verifications_total",
			Help: "Video verification attempts by outcome",
		}, []string{"outcome"}),
		PolicyRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_policy_rejections_total",
			Help: "Videos rejected by the duration ceiling, by entry path",
		}, []string{"path"}),
		UpstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_upstream_errors_total",
			Help: "External platform failures by operation",
		}, []string{"operation"}),
		TranscriptFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "curator_transcript_fallbacks_total",
			Help: "Classifications that ran without a transcript",
		}),
		ClassifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "curator_classify_duration_seconds",
			Help:    "Tag classification latency",
			Buckets: prometheus.DefBuckets,
		}),
		SearchResults: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "curator_search_results",
			Help:    "Surviving results per search after policy filtering",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
	}}
}

// Handler serves the Prometheus scrape endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}
