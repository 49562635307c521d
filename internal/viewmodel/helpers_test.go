// ABOUTME: Shared fixtures for view-model tests.
// ABOUTME: Provides a temp SQLite repository, test deps and a hand-driven clock.
package viewmodel

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/gainsbook/internal/logging"
	"github.com/harperreed/gainsbook/internal/metrics"
	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func setupRepo(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "gainsbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testDeps(t *testing.T, repo storage.Repository) (Deps, *fakeClock) {
	t.Helper()
	clock := newFakeClock(fixedNow)
	return Deps{
		Repo:    repo,
		Logger:  logging.Discard(),
		Metrics: metrics.NewTestManager(),
		Clock:   clock,
		Locks:   NewKeyedMutex(),
	}, clock
}

// gatedRepo holds the initial-load reads of the edit and stats view-models
// until Release is called.
type gatedRepo struct {
	storage.Repository
	release chan struct{}
	once    sync.Once
}

func newGatedRepo(r storage.Repository) *gatedRepo {
	return &gatedRepo{Repository: r, release: make(chan struct{})}
}

func (g *gatedRepo) Release() {
	g.once.Do(func() { close(g.release) })
}

func (g *gatedRepo) wait(ctx context.Context) error {
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedRepo) GetWorkoutWithExercises(ctx context.Context, id int64) ([]models.WorkoutWithExercises, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return g.Repository.GetWorkoutWithExercises(ctx, id)
}

func (g *gatedRepo) ListVariables(ctx context.Context) ([]models.Variable, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return g.Repository.ListVariables(ctx)
}

// fakeClock only moves when Advance is called.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[*fakeTicker]bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, tickers: make(map[*fakeTicker]bool)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time, 1), clock: c}
	c.tickers[t] = true
	return t
}

// Advance moves time forward and fires every live ticker once.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := make([]*fakeTicker, 0, len(c.tickers))
	for t := range c.tickers {
		tickers = append(tickers, t)
	}
	c.mu.Unlock()

	for _, t := range tickers {
		select {
		case t.c <- now:
		default:
		}
	}
}

// Move moves time forward without firing any ticker.
func (c *fakeClock) Move(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) liveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

type fakeTicker struct {
	c     chan time.Time
	clock *fakeClock
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	delete(t.clock.tickers, t)
}
