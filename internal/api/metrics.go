package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rubric_ranking_recompute_duration_seconds",
		Help:    "Time spent recomputing a project ranking.",
		Buckets: prometheus.DefBuckets,
	})

	configSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rubric_config_saves_total",
		Help: "Number of scoring configurations saved.",
	})

	scoreUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rubric_score_upserts_total",
		Help: "Number of raw provider scores written through the API.",
	})
)
