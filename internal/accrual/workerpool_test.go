package accrual

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		tasks   int
		failing int
	}{
		{name: "More tasks than workers", workers: 3, tasks: 12},
		{name: "Failures do not stop the pool", workers: 2, tasks: 6, failing: 2},
		{name: "Non-positive size becomes one worker", workers: 0, tasks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.workers)
			defer wp.Close()

			var (
				wg                    sync.WaitGroup
				done, active, maxSeen atomic.Int32
			)
			limit := int32(max(tt.workers, 1))
			for i := 0; i < tt.tasks; i++ {
				wg.Add(1)
				fail := i < tt.failing
				require.NoError(t, wp.AddTask(context.Background(), func() error {
					defer wg.Done()
					n := active.Add(1)
					defer active.Add(-1)
					for {
						seen := maxSeen.Load()
						if n <= seen || maxSeen.CompareAndSwap(seen, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					if fail {
						return assert.AnError
					}
					done.Add(1)
					return nil
				}))
			}
			wg.Wait()

			assert.Equal(t, int32(tt.tasks-tt.failing), done.Load())
			assert.LessOrEqual(t, maxSeen.Load(), limit)
		})
	}
}

func TestWorkerPool_RecoversFromPanic(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	var wg sync.WaitGroup
	var ran atomic.Int32
	wg.Add(2)
	require.NoError(t, wp.AddTask(context.Background(), func() error {
		defer wg.Done()
		panic("boom")
	}))
	require.NoError(t, wp.AddTask(context.Background(), func() error {
		defer wg.Done()
		ran.Add(1)
		return nil
	}))
	wg.Wait()

	assert.Equal(t, int32(1), ran.Load())
}

func TestWorkerPool_Closed(t *testing.T) {
	wp := NewWorkerPool(1)
	wp.Close()
	wp.Close()

	err := wp.AddTask(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	defer close(block)
	// occupy the worker and fill the buffer
	require.NoError(t, wp.AddTask(context.Background(), func() error { <-block; return nil }))
	require.Eventually(t, func() bool { return len(wp.pool) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wp.AddTask(ctx, func() error {
		t.Error("Task should not be executed")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
