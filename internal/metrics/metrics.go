// Package metrics holds the Prometheus collectors of the service. They are
// registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wattline"

// Sample outcomes.
const (
	OutcomeStored       = "stored"
	OutcomeInterpolated = "interpolated"
	OutcomeDuplicate    = "duplicate"
	OutcomeSkipped      = "skipped"
)

var (
	// SamplesTotal counts grid points written by ingestion, by tier and outcome.
	SamplesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Grid points handled by ingestion by tier and outcome.",
		},
		[]string{"tier", "outcome"},
	)

	// IngestDurationSeconds is AddValue latency.
	IngestDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Duration of one AddValue call in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2.5, 10),
		},
	)

	// RollupBucketsTotal counts long-term buckets finalized by rollup.
	RollupBucketsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollup_buckets_total",
			Help:      "Long-term buckets finalized by rollup.",
		},
	)

	// RollupDurationSeconds is the duration of one scheduler cycle.
	RollupDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rollup_cycle_duration_seconds",
			Help:      "Duration of one rollup and retention cycle in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2.5, 10),
		},
	)

	// PrunedSamplesTotal counts detailed rows deleted by the retention sweep.
	PrunedSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_samples_total",
			Help:      "Detailed samples deleted by the retention sweep.",
		},
	)

	// QueryDurationSeconds is engine query latency by method.
	QueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Aggregation engine query duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10),
		},
		[]string{"method"},
	)

	// TariffCacheLookupsTotal counts tariff cache lookups by result (hit, miss).
	TariffCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tariff_cache_lookups_total",
			Help:      "Tariff cache lookups by result.",
		},
		[]string{"result"},
	)
)
