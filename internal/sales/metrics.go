package sales

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OutcomesTotal counts processed receipts by outcome kind
	OutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixsales_outcomes_total",
			Help: "Total number of processed receipts by outcome",
		},
		[]string{"kind"},
	)

	// RecognitionDuration tracks how long text recognition takes per receipt
	RecognitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixsales_recognition_duration_seconds",
			Help:    "Receipt text recognition duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// MissingFieldsTotal counts records that fell back to a sentinel or zero
	MissingFieldsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixsales_missing_fields_total",
			Help: "Total number of extracted records missing a field",
		},
		[]string{"field"},
	)
)
