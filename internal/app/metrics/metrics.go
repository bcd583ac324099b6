package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "whisper_web"

// Outcome labels for transcription requests.
const (
	OutcomeSuccess              = "success"
	OutcomeMissingCredential    = "missing_credential"
	OutcomeUnsupportedMediaType = "unsupported_media_type"
	OutcomeServiceError         = "service_error"
)

// Metrics owns a private registry so tests and multiple servers never clash
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	transcriptions       *prometheus.CounterVec
	transcriptionLatency *prometheus.HistogramVec
	audioSeconds         *prometheus.CounterVec
	costUSD              *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		transcriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transcriptions_total",
				Help:      "Transcription requests by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		transcriptionLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Time spent waiting for the upstream transcription service.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
		audioSeconds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audio_seconds_total",
				Help:      "Seconds of audio transcribed, as reported by the provider.",
			},
			[]string{"provider"},
		),
		costUSD: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_cost_usd_total",
				Help:      "Estimated spend on transcription in USD.",
			},
			[]string{"provider"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		m.transcriptions,
		m.transcriptionLatency,
		m.audioSeconds,
		m.costUSD,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Transcriptions is the per provider and outcome counter.
func (m *Metrics) Transcriptions() *prometheus.CounterVec {
	return m.transcriptions
}

// RecordRejected counts a request that never reached the upstream service.
func (m *Metrics) RecordRejected(provider, outcome string) {
	m.transcriptions.WithLabelValues(provider, outcome).Inc()
}

// RecordUpstreamFailure counts a failed upstream call.
func (m *Metrics) RecordUpstreamFailure(provider string, latency time.Duration) {
	m.transcriptions.WithLabelValues(provider, OutcomeServiceError).Inc()
	m.transcriptionLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordSuccess counts a completed transcription and its usage.
func (m *Metrics) RecordSuccess(provider string, latency, audio time.Duration, costUSD float64) {
	m.transcriptions.WithLabelValues(provider, OutcomeSuccess).Inc()
	m.transcriptionLatency.WithLabelValues(provider).Observe(latency.Seconds())
	if audio > 0 {
		m.audioSeconds.WithLabelValues(provider).Add(audio.Seconds())
	}
	if costUSD > 0 {
		m.costUSD.WithLabelValues(provider).Add(costUSD)
	}
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, latency time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpLatency.WithLabelValues(method, route, code).Observe(latency.Seconds())
}
