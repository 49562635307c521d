// ABOUTME: Tests for State, Scope and KeyedMutex.
// ABOUTME: Checks conflation, failure handling and that no goroutines are left behind.
package viewmodel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harperreed/gainsbook/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestStateSubscribeConflates(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewState(0)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)

	assert.Equal(t, 0, <-ch)

	for i := 1; i <= 5; i++ {
		s.Set(i)
	}
	assert.Equal(t, 5, <-ch)
	assert.Equal(t, 5, s.Value())

	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestScopeFailureKeepsState(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := metrics.NewTestManager()
	scope := NewScope(context.Background(), "test", nil, m)
	defer scope.Close()

	target := NewState("old")
	boom := errors.New("boom")
	scope.Launch("fail", func(ctx context.Context) error {
		return boom
	})
	scope.Wait()

	assert.Equal(t, "old", target.Value())
	assert.ErrorIs(t, scope.LastError.Value(), boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterOperations.WithLabelValues("test", "fail", metrics.StatusError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GaugeInFlight))
}

func TestScopeCloseCancelsTasks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	scope := NewScope(context.Background(), "test", nil, nil)
	started := make(chan struct{})
	scope.Launch("block", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started
	scope.Close()

	var ran atomic.Bool
	launched := scope.Launch("after_close", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.False(t, launched)
	scope.Wait()
	assert.False(t, ran.Load())
}

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	k := NewKeyedMutex()
	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(7)
			defer unlock()
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, k.size())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := NewKeyedMutex()
	unlockA := k.Lock(1)
	done := make(chan struct{})
	go func() {
		unlock := k.Lock(2)
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
	unlockA()
}
