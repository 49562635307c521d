// ABOUTME: Structured task scope for view-model background work.
// ABOUTME: Tasks run on goroutines bound to one context; Close cancels and waits for them.
package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gainsbook/internal/metrics"
)

// Scope owns the goroutines launched by one view-model.
type Scope struct {
	name    string
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *log.Logger
	metrics *metrics.Manager

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	// LastError holds the most recent task failure, or nil.
	LastError *State[error]
}

// NewScope creates a scope named after its view-model.
func NewScope(parent context.Context, name string, logger *log.Logger, m *metrics.Manager) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{
		name:      name,
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		metrics:   m,
		LastError: NewState[error](nil),
	}
}

// Context returns the scope's context.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Launch runs fn on a new goroutine. A returned error is logged, counted and
// stored in LastError; fn must not publish state when it fails.
// Launch on a closed scope does nothing and reports false.
func (s *Scope) Launch(op string, fn func(ctx context.Context) error) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.GaugeInFlight.Inc()
	}

	go func() {
		defer s.wg.Done()
		start := time.Now()

		err := fn(s.ctx)

		if s.metrics != nil {
			s.metrics.GaugeInFlight.Dec()
			s.metrics.ObserveOperation(s.name, op, time.Since(start).Seconds(), err)
		}
		if err != nil {
			if s.ctx.Err() == nil && s.logger != nil {
				s.logger.Error("task failed", "op", op, "err", err)
			}
			s.LastError.Set(err)
			return
		}
		if s.logger != nil {
			s.logger.Debug("task done", "op", op, "took", time.Since(start))
		}
	}()
	return true
}

// Wait blocks until every launched task has returned.
func (s *Scope) Wait() {
	s.wg.Wait()
}

// Close cancels running tasks and waits for them to return.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
