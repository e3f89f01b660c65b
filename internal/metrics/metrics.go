package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "protox"

// Registry holds every protox metric plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	Completions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "Completion calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	Retrievals = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrievals_total",
		Help:      "Context retrievals by outcome.",
	}, []string{"outcome"})

	MemoryErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memory_errors_total",
		Help:      "Failed fact memory writes by operation.",
	}, []string{"op"})

	HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	EmbeddingCacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "embedding_cache_hits_total",
		Help:      "Query embeddings served from cache.",
	})

	EmbeddingCacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "embedding_cache_misses_total",
		Help:      "Query embeddings computed by the provider.",
	})

	IngestedDocuments = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingested_documents",
		Help:      "Entries in the knowledge collection after the last ingestion.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
