// ABOUTME: Prometheus metrics for background operations and the workout timer.
// ABOUTME: A Manager is created once per process and passed to the view-model scopes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "gainsbook"

	StatusOK    = "ok"
	StatusError = "error"
)

type Manager struct {
	// counters
	CounterOperations *prometheus.CounterVec
	CounterTimerRuns  *prometheus.CounterVec

	// gauges
	GaugeInFlight prometheus.Gauge

	// histograms
	HistOperationDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager(Namespace, "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOperations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "The total number of background operations by view-model, operation and status",
	}, []string{"vm", "op", "status"})
	counterTimerRuns := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "timer_runs_total",
		Help:      "The total number of timer runs by mode and outcome",
	}, []string{"mode", "outcome"})

	gaugeInFlight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_in_flight",
		Help:      "Current number of running background operations",
	})

	histOperationDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Duration of background operations",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"vm", "op"})

	return &Manager{
		CounterOperations:     counterOperations,
		CounterTimerRuns:      counterTimerRuns,
		GaugeInFlight:         gaugeInFlight,
		HistOperationDuration: histOperationDuration,
	}
}

// ObserveOperation records one finished operation.
func (m *Manager) ObserveOperation(vm, op string, seconds float64, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.CounterOperations.WithLabelValues(vm, op, status).Inc()
	m.HistOperationDuration.WithLabelValues(vm, op).Observe(seconds)
}
