package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/usecase/run_reminder_sweep"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSweeper struct {
	mu    sync.Mutex
	calls []*run_reminder_sweep.Request
	err   error
}

func (f *fakeSweeper) Execute(_ context.Context, req *run_reminder_sweep.Request) (*run_reminder_sweep.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &run_reminder_sweep.Response{TickID: req.TickID}, nil
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (f *fakeMetrics) ObserveSweep(result string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

func TestWorkerRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	worker := NewWorker(sweeper, time.Hour, nil, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	// Первый проход выполняется сразу, без ожидания тикера
	require.Eventually(t, func() bool { return sweeper.callCount() == 1 },
		time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestWorkerTicksOnInterval(t *testing.T) {
	sweeper := &fakeSweeper{}
	worker := NewWorker(sweeper, 20*time.Millisecond, nil, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.Run(ctx)

	require.Eventually(t, func() bool { return sweeper.callCount() >= 3 },
		time.Second, 5*time.Millisecond)

	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	for _, req := range sweeper.calls {
		assert.False(t, req.Now.IsZero())
		assert.NotEmpty(t, req.TickID)
	}
}

func TestWorkerObservesSweepResult(t *testing.T) {
	sweeper := &fakeSweeper{}
	metrics := &fakeMetrics{}
	worker := NewWorker(sweeper, time.Hour, metrics, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		metrics.mu.Lock()
		defer metrics.mu.Unlock()
		return len(metrics.results) == 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, []string{"ok"}, metrics.results)
}

func TestWorkerObservesSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db down")}
	metrics := &fakeMetrics{}
	worker := NewWorker(sweeper, time.Hour, metrics, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		metrics.mu.Lock()
		defer metrics.mu.Unlock()
		return len(metrics.results) == 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, []string{"error"}, metrics.results)
}

func TestNewWorkerDefaultsInterval(t *testing.T) {
	worker := NewWorker(&fakeSweeper{}, 0, nil, nopLogger{})
	assert.Equal(t, defaultInterval, worker.interval)
}
