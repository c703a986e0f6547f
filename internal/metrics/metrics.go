package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend call outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeAppError     = "app_error"
	OutcomeNetworkError = "network_error"
)

var (
	SkillRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_total",
			Help: "Total number of voice requests by the handler that answered them",
		},
		[]string{"handler"},
	)

	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of calls to the helmet backend",
		},
		[]string{"method", "path", "outcome"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backend_request_duration_seconds",
			Help: "Duration of calls to the helmet backend in seconds",
		},
		[]string{"method", "path"},
	)
)
