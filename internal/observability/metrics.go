package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_frequencia_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks in-flight requests
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_frequencia_active_connections",
			Help: "Number of active connections",
		},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_frequencia_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// AttendanceMarks counts reconciled attendance marks by outcome (updated, appended)
	AttendanceMarks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_frequencia_attendance_marks_total",
			Help: "Number of attendance marks reconciled",
		},
		[]string{"outcome"},
	)

	// ReconcileConflicts counts conditional writes that lost a race and were retried
	ReconcileConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "app_frequencia_reconcile_conflicts_total",
			Help: "Number of attendance write conflicts",
		},
	)

	// LoginAttempts counts login attempts by result (success, invalid, throttled)
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_frequencia_login_attempts_total",
			Help: "Number of login attempts",
		},
		[]string{"result"},
	)
)
