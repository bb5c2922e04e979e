package surfacearea

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	estimatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surface_area_estimates_total",
		Help: "The total number of completed surface area estimates",
	})
	estimateErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surface_area_estimate_errors_total",
		Help: "The total number of surface area estimates rejected with invalid input",
	})
	estimateDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "surface_area_estimate_duration_seconds",
		Help: "The time taken by each surface area estimate",
	})
)
