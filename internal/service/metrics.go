package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// stepTotal counts completed wizard steps
	stepTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_step_total",
		Help: "Completed wizard steps by step name",
	}, []string{"step"})

	// submissionTotal counts option submissions by outcome: matched, empty, rejected
	submissionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_submission_total",
		Help: "Option submissions by outcome",
	}, []string{"outcome"})

	// filterDuration tracks tree filtering latency
	filterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_filter_duration_seconds",
		Help:    "Category tree filtering duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
	})

	// selectionSize tracks how many distinct options a submission carries
	selectionSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wizard_selection_size",
		Help:    "Distinct options per submission",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})
)
