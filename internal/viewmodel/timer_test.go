// ABOUTME: Tests for the workout timer state machine.
// ABOUTME: Drives ticks with a fake clock and checks that loops exit on pause, reset and close.
package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitFor = 2 * time.Second

func newTestTimer(t *testing.T) (*TimerViewModel, *fakeClock) {
	t.Helper()
	deps, clock := testDeps(t, nil)
	tm := NewTimerViewModel(context.Background(), deps)
	t.Cleanup(tm.Close)
	return tm, clock
}

func TestCountDownPublishesRemainingAndFraction(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountDown())
	assert.Equal(t, TimerCountingDown, tm.State.Value())
	assert.True(t, tm.CountDownVisible())
	assert.False(t, tm.CountUpButtonVisible())

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
	}

	require.Eventually(t, func() bool { return tm.Remaining.Value() == 55 }, waitFor, time.Millisecond)
	assert.InDelta(t, 55.0/60.0, tm.Fraction.Value(), 1e-9)

	tm.Close()
}

func TestCountDownRoundsUpPartialSeconds(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountDown())
	clock.Advance(1500 * time.Millisecond)

	require.Eventually(t, func() bool { return tm.Remaining.Value() == 59 }, waitFor, time.Millisecond)
	assert.InDelta(t, 58.5/60.0, tm.Fraction.Value(), 1e-9)

	tm.Close()
}

func TestCountDownCompletes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	p, ok := PresetByLabel("1 min")
	require.True(t, ok)
	require.NoError(t, tm.SetPreset(p))
	require.NoError(t, tm.StartCountDown())

	clock.Advance(61 * time.Second)

	require.Eventually(t, func() bool { return tm.State.Value() == TimerIdle }, waitFor, time.Millisecond)
	assert.Equal(t, int64(0), tm.Remaining.Value())
	assert.Equal(t, 0.0, tm.Fraction.Value())
	require.Eventually(t, func() bool { return clock.liveTickers() == 0 }, waitFor, time.Millisecond)

	tm.Close()
}

func TestPauseAndResume(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountDown())
	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return tm.Remaining.Value() == 50 }, waitFor, time.Millisecond)

	require.NoError(t, tm.Pause())
	assert.Equal(t, TimerPausedCountingDown, tm.State.Value())
	assert.True(t, tm.CountDownVisible())
	require.Eventually(t, func() bool { return clock.liveTickers() == 0 }, waitFor, time.Millisecond)

	// Time passing while paused does not count
	clock.Advance(20 * time.Second)
	assert.Equal(t, int64(50), tm.Remaining.Value())

	require.NoError(t, tm.Resume())
	assert.Equal(t, TimerCountingDown, tm.State.Value())
	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool { return tm.Remaining.Value() == 45 }, waitFor, time.Millisecond)

	tm.Close()
}

func TestPauseCountsTimeSinceLastTick(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountDown())
	for i := 0; i < 10; i++ {
		clock.Move(900 * time.Millisecond)
		require.NoError(t, tm.Pause())
		require.NoError(t, tm.Resume())
	}
	require.NoError(t, tm.Pause())

	assert.Equal(t, int64(51), tm.Remaining.Value())
	assert.InDelta(t, 51.0/60.0, tm.Fraction.Value(), 1e-9)

	tm.Close()
}

func TestPauseCountUpKeepsPartialSeconds(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountUp())
	clock.Move(1500 * time.Millisecond)
	require.NoError(t, tm.Pause())
	assert.Equal(t, int64(1), tm.Elapsed.Value())

	require.NoError(t, tm.Resume())
	clock.Move(600 * time.Millisecond)
	require.NoError(t, tm.Pause())
	assert.Equal(t, int64(2), tm.Elapsed.Value())

	tm.Close()
}

func TestPauseAfterCountDownRanOut(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountDown())
	clock.Move(61 * time.Second)
	require.NoError(t, tm.Pause())

	assert.Equal(t, TimerIdle, tm.State.Value())
	assert.Equal(t, int64(0), tm.Remaining.Value())
	require.Eventually(t, func() bool { return clock.liveTickers() == 0 }, waitFor, time.Millisecond)

	tm.Close()
}

func TestStartAfterCloseStopsTicker(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	tm.Close()
	require.NoError(t, tm.StartCountDown())
	assert.Equal(t, 0, clock.liveTickers())
}

func TestInvalidTransitions(t *testing.T) {
	tm, _ := newTestTimer(t)

	assert.Error(t, tm.Pause())
	assert.Error(t, tm.Resume())

	require.NoError(t, tm.StartCountUp())
	assert.Error(t, tm.StartCountDown())
	assert.Error(t, tm.SetPreset(TimerPresets[1]))
	assert.False(t, tm.CountDownButtonVisible())
	assert.True(t, tm.CountUpVisible())
}

func TestCountUpAndReset(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	tm, clock := newTestTimer(t)

	require.NoError(t, tm.StartCountUp())
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
	}
	require.Eventually(t, func() bool { return tm.Elapsed.Value() == 3 }, waitFor, time.Millisecond)

	require.NoError(t, tm.Pause())
	assert.Equal(t, TimerPausedCountingUp, tm.State.Value())

	tm.Reset()
	assert.Equal(t, TimerIdle, tm.State.Value())
	assert.Equal(t, int64(0), tm.Elapsed.Value())
	assert.Equal(t, int64(60), tm.Remaining.Value())
	assert.Equal(t, 1.0, tm.Fraction.Value())
	assert.True(t, tm.CountDownButtonVisible())
	assert.True(t, tm.CountUpButtonVisible())

	tm.Close()
}

func TestPresets(t *testing.T) {
	labels := []string{"1 min", "2 min", "3 min", "4 min", "5 min", "10 min", "15 min"}
	require.Len(t, TimerPresets, len(labels))
	for i, l := range labels {
		assert.Equal(t, l, TimerPresets[i].Label)
	}
	p, ok := PresetByMinutes(10)
	require.True(t, ok)
	assert.Equal(t, int64(600), p.Seconds)
	_, ok = PresetByMinutes(7)
	assert.False(t, ok)
}

func TestFormatClock(t *testing.T) {
	tests := map[int64]string{
		0:   "00:00",
		5:   "00:05",
		60:  "01:00",
		125: "02:05",
		900: "15:00",
		-3:  "00:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatClock(in), "FormatClock(%d)", in)
	}
}
