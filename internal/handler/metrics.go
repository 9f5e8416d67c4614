package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_token_verifications_total",
			Help: "Total number of bearer token verifications by status.",
		},
		[]string{"status"},
	)

	productsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_products_created_total",
		Help: "Total number of products listed by sellers.",
	})

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_uploads_total",
			Help: "Total number of file uploads by kind and status.",
		},
		[]string{"kind", "status"},
	)
)
