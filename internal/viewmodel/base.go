// ABOUTME: Common plumbing embedded by every view-model.
// ABOUTME: Owns the task scope and exposes Wait, Close and the last task error.
package viewmodel

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// Errors returned by synchronous view-model methods.
var (
	ErrEmptyDescription = errors.New("exercise description is empty")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNotLoaded        = errors.New("workout not loaded")
	ErrWorkoutMissing   = errors.New("workout not found")
)

type base struct {
	deps   Deps
	scope  *Scope
	logger *log.Logger
}

func newBase(ctx context.Context, name string, deps Deps) base {
	deps = deps.withDefaults()
	logger := deps.logger(name)
	return base{
		deps:   deps,
		scope:  NewScope(ctx, name, logger, deps.Metrics),
		logger: logger,
	}
}

// Wait blocks until all launched work has finished.
func (b *base) Wait() { b.scope.Wait() }

// Close cancels outstanding work and waits for it.
func (b *base) Close() { b.scope.Close() }

// LastError returns the state holding the most recent background failure.
func (b *base) LastError() *State[error] { return b.scope.LastError }

func (b *base) debug(msg string, keyvals ...interface{}) {
	if b.logger != nil {
		b.logger.Debug(msg, keyvals...)
	}
}
