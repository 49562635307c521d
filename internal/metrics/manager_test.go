// ABOUTME: Tests for the metrics manager.
// ABOUTME: Reads counters back through the prometheus testutil helpers.
package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.ObserveOperation("log", "load_workouts", 0.002, nil)
	m.ObserveOperation("log", "load_workouts", 0.003, nil)
	m.ObserveOperation("log", "delete_workout", 0.001, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterOperations.WithLabelValues("log", "load_workouts", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterOperations.WithLabelValues("log", "delete_workout", StatusError)))

	count, err := testutil.GatherAndCount(reg, "gainsbook_test_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInFlightGauge(t *testing.T) {
	m := NewTestManager()
	m.GaugeInFlight.Inc()
	m.GaugeInFlight.Inc()
	m.GaugeInFlight.Dec()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GaugeInFlight))
}
