package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "payments",
		Name:      "callbacks_total",
		Help:      "Total number of payment callbacks by method and outcome.",
	}, []string{"method", "outcome"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Total number of accepted order status transitions.",
	}, []string{"to"})

	provisioningTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "orders",
		Name:      "provisioning_total",
		Help:      "Total number of provisioning attempts by order type and outcome.",
	}, []string{"type", "outcome"})

	ordersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "esim_order_service",
		Subsystem: "orders",
		Name:      "expired_total",
		Help:      "Total number of abandoned orders moved to expired.",
	})
)
