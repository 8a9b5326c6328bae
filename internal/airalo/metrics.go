package airalo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "airalo",
		Name:      "requests_total",
		Help:      "Total number of provisioning API calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "esim_order_service",
		Subsystem: "airalo",
		Name:      "request_duration_seconds",
		Help:      "Provisioning API call latencies in seconds.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"operation"})

	tokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "airalo",
		Name:      "token_refreshes_total",
		Help:      "Total number of access token requests.",
	}, []string{"outcome"})
)
