package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lyra"

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     prometheus.Counter
	candidates      prometheus.Histogram
	llmFailures     *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		generations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Successful candidate generation calls.",
		}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidates_per_generation",
			Help:      "Candidates extracted from each model response.",
			Buckets:   []float64{0, 1, 2, 3, 4, 6},
		}),
		llmFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_failures_total",
			Help:      "Failed model calls by operation.",
		}, []string{"operation"}),
		llmLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "Model call latency by operation.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"operation"}),
	}
}

func (m *Metrics) observeRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) observeLLM(operation string, d time.Duration, err error) {
	m.llmLatency.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.llmFailures.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) observeGeneration(count int) {
	m.generations.Inc()
	m.candidates.Observe(float64(count))
}
