package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TranslationFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_fields_total",
			Help: "Translated fields by language and outcome",
		},
		[]string{"language", "field", "result"},
	)

	ContentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fallback_total",
			Help: "Content reads served from a fallback tier",
		},
		[]string{"tier"},
	)

	PostCacheRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_cache_rollbacks_total",
			Help: "Optimistic post cache mutations that were rolled back",
		},
		[]string{"op"},
	)
)
