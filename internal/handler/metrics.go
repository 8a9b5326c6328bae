package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callbacksConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "kafka_consumer",
		Name:      "callbacks_consumed_total",
		Help:      "Payment callbacks read from Kafka by outcome.",
	}, []string{"outcome"})

	callbacksDLQ = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "kafka_consumer",
		Name:      "callbacks_dlq_total",
		Help:      "Payment callbacks written to DLQ.",
	})

	commitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "kafka_consumer",
		Name:      "commit_errors_total",
		Help:      "Kafka commit errors.",
	})

	callbacksInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "esim_order_service",
		Subsystem: "kafka_consumer",
		Name:      "callbacks_in_progress",
		Help:      "Payment callbacks currently being processed.",
	})

	callbackDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "esim_order_service",
		Subsystem: "payments",
		Name:      "callback_duration_seconds",
		Help:      "Payment callback handling latency including provisioning.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method"})
)
