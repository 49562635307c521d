// ABOUTME: Count-down and count-up workout timer driven by an explicit state machine.
// ABOUTME: Elapsed time is measured as clock deltas between ticks rather than counted ticks.
package viewmodel

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// TimerState is the timer's mode.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerCountingDown
	TimerPausedCountingDown
	TimerCountingUp
	TimerPausedCountingUp
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerCountingDown:
		return "counting down"
	case TimerPausedCountingDown:
		return "paused (count down)"
	case TimerCountingUp:
		return "counting up"
	case TimerPausedCountingUp:
		return "paused (count up)"
	default:
		return fmt.Sprintf("TimerState(%d)", int(s))
	}
}

// Preset is a selectable countdown length.
type Preset struct {
	Label   string
	Seconds int64
}

// TimerPresets lists the countdown choices, default first.
var TimerPresets = []Preset{
	{"1 min", 60},
	{"2 min", 120},
	{"3 min", 180},
	{"4 min", 240},
	{"5 min", 300},
	{"10 min", 600},
	{"15 min", 900},
}

// PresetByLabel finds a preset by its label.
func PresetByLabel(label string) (Preset, bool) {
	for _, p := range TimerPresets {
		if p.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetByMinutes finds a preset by its length in minutes.
func PresetByMinutes(minutes int) (Preset, bool) {
	for _, p := range TimerPresets {
		if p.Seconds == int64(minutes)*60 {
			return p, true
		}
	}
	return Preset{}, false
}

const (
	modeCountDown = "countdown"
	modeCountUp   = "countup"
)

// TimerViewModel runs one timer at a time.
type TimerViewModel struct {
	base

	State  *State[TimerState]
	Preset *State[Preset]
	// Remaining is the countdown's remaining whole seconds, rounded up.
	Remaining *State[int64]
	// Fraction is remaining/total for the progress bar.
	Fraction *State[float64]
	// Elapsed is the count-up's whole seconds.
	Elapsed *State[int64]

	mu        sync.Mutex
	gen       int
	stop      context.CancelFunc
	total     time.Duration
	remaining time.Duration
	elapsed   time.Duration
	// last is when the running loop's time was last applied.
	last time.Time
}

// NewTimerViewModel creates an idle timer on the first preset.
func NewTimerViewModel(ctx context.Context, deps Deps) *TimerViewModel {
	p := TimerPresets[0]
	return &TimerViewModel{
		base:      newBase(ctx, "timer", deps),
		State:     NewState(TimerIdle),
		Preset:    NewState(p),
		Remaining: NewState(p.Seconds),
		Fraction:  NewState(1.0),
		Elapsed:   NewState[int64](0),
		total:     time.Duration(p.Seconds) * time.Second,
	}
}

// CountDownVisible reports whether the countdown display is shown.
func (t *TimerViewModel) CountDownVisible() bool {
	s := t.State.Value()
	return s == TimerCountingDown || s == TimerPausedCountingDown
}

// CountUpVisible reports whether the count-up display is shown.
func (t *TimerViewModel) CountUpVisible() bool {
	s := t.State.Value()
	return s == TimerCountingUp || s == TimerPausedCountingUp
}

// CountDownButtonVisible reports whether a countdown can be started.
func (t *TimerViewModel) CountDownButtonVisible() bool {
	return !t.CountUpVisible()
}

// CountUpButtonVisible reports whether a count-up can be started.
func (t *TimerViewModel) CountUpButtonVisible() bool {
	return !t.CountDownVisible()
}

// SetPreset selects the countdown length. It only applies while idle.
func (t *TimerViewModel) SetPreset(p Preset) error {
	if p.Seconds <= 0 {
		return fmt.Errorf("preset %q has no length", p.Label)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.State.Value() != TimerIdle {
		return fmt.Errorf("cannot change preset while %s", t.State.Value())
	}
	t.Preset.Set(p)
	t.total = time.Duration(p.Seconds) * time.Second
	t.Remaining.Set(p.Seconds)
	t.Fraction.Set(1.0)
	return nil
}

// StartCountDown starts counting down from the selected preset.
func (t *TimerViewModel) StartCountDown() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.State.Value() != TimerIdle {
		return fmt.Errorf("cannot start countdown while %s", t.State.Value())
	}
	t.remaining = t.total
	t.publishCountDown()
	t.State.Set(TimerCountingDown)
	t.countRun(modeCountDown, "started")
	t.runLocked(modeCountDown)
	return nil
}

// StartCountUp starts counting up from zero.
func (t *TimerViewModel) StartCountUp() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.State.Value() != TimerIdle {
		return fmt.Errorf("cannot start count up while %s", t.State.Value())
	}
	t.elapsed = 0
	t.Elapsed.Set(0)
	t.State.Set(TimerCountingUp)
	t.countRun(modeCountUp, "started")
	t.runLocked(modeCountUp)
	return nil
}

// Pause stops the running timer, keeping its progress including the time run
// since the last tick. A countdown that ran out in that time completes instead.
func (t *TimerViewModel) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.State.Value() {
	case TimerCountingDown:
		if t.advanceLocked(modeCountDown) {
			return nil
		}
		t.stopLocked()
		t.State.Set(TimerPausedCountingDown)
	case TimerCountingUp:
		t.advanceLocked(modeCountUp)
		t.stopLocked()
		t.State.Set(TimerPausedCountingUp)
	default:
		return fmt.Errorf("cannot pause while %s", t.State.Value())
	}
	return nil
}

// Resume continues a paused timer from where it stopped.
func (t *TimerViewModel) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.State.Value() {
	case TimerPausedCountingDown:
		t.State.Set(TimerCountingDown)
		t.runLocked(modeCountDown)
	case TimerPausedCountingUp:
		t.State.Set(TimerCountingUp)
		t.runLocked(modeCountUp)
	default:
		return fmt.Errorf("cannot resume while %s", t.State.Value())
	}
	return nil
}

// Reset stops any timer and returns to idle with the preset's full length.
func (t *TimerViewModel) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.State.Value() {
	case TimerCountingDown:
		t.advanceLocked(modeCountDown)
	case TimerCountingUp:
		t.advanceLocked(modeCountUp)
	}
	if t.State.Value() != TimerIdle {
		t.countRun(t.modeLocked(), "reset")
	}
	t.stopLocked()
	t.remaining = t.total
	t.elapsed = 0
	t.publishCountDown()
	t.Elapsed.Set(0)
	t.State.Set(TimerIdle)
}

// Close stops the timer and its goroutines.
func (t *TimerViewModel) Close() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
	t.scope.Close()
}

func (t *TimerViewModel) modeLocked() string {
	switch t.State.Value() {
	case TimerCountingUp, TimerPausedCountingUp:
		return modeCountUp
	default:
		return modeCountDown
	}
}

// runLocked starts a tick loop for mode. Callers hold t.mu.
func (t *TimerViewModel) runLocked(mode string) {
	t.stopLocked()
	ctx, cancel := context.WithCancel(t.scope.Context())
	t.stop = cancel
	gen := t.gen

	ticker := t.deps.Clock.NewTicker(time.Second)
	t.last = t.deps.Clock.Now()

	launched := t.scope.Launch(mode, func(context.Context) error {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C():
				if done := t.tick(gen, mode); done {
					return nil
				}
			}
		}
	})
	if !launched {
		ticker.Stop()
	}
}

// stopLocked cancels the current loop and invalidates its pending ticks.
func (t *TimerViewModel) stopLocked() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// tick applies the time measured since the last update. It reports true when
// the loop should exit.
func (t *TimerViewModel) tick(gen int, mode string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return true
	}
	return t.advanceLocked(mode)
}

// advanceLocked applies the clock delta since t.last to the running mode and
// reports whether a countdown completed. Callers hold t.mu.
func (t *TimerViewModel) advanceLocked(mode string) bool {
	now := t.deps.Clock.Now()
	delta := now.Sub(t.last)
	t.last = now
	if delta < 0 {
		delta = 0
	}

	if mode == modeCountUp {
		t.elapsed += delta
		t.Elapsed.Set(int64(t.elapsed / time.Second))
		return false
	}

	t.remaining -= delta
	if t.remaining <= 0 {
		t.remaining = 0
		t.publishCountDown()
		t.stopLocked()
		t.State.Set(TimerIdle)
		t.countRun(modeCountDown, "completed")
		t.debug("countdown finished")
		return true
	}
	t.publishCountDown()
	return false
}

func (t *TimerViewModel) publishCountDown() {
	t.Remaining.Set(int64(math.Ceil(t.remaining.Seconds())))
	if t.total > 0 {
		t.Fraction.Set(t.remaining.Seconds() / t.total.Seconds())
	}
}

func (t *TimerViewModel) countRun(mode, outcome string) {
	if t.deps.Metrics != nil {
		t.deps.Metrics.CounterTimerRuns.WithLabelValues(mode, outcome).Inc()
	}
}

// FormatClock renders whole seconds as MM:SS.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
