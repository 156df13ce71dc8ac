package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultStale = "stale"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "statusboard",
			Name:      "fetch_total",
			Help:      "Status page fetches by category and result (ok, error, stale).",
		},
		[]string{"category", "result"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "statusboard",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching and rendering one category.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"category"},
	)
)
