package accrual

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

type WorkerPool struct {
	mu     sync.RWMutex
	closed bool
	pool   chan Task
}

func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	wp := &WorkerPool{pool: make(chan Task, size)}
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.pool {
		wp.run(task)
	}
}

// run executes one task; a panic is logged and the worker keeps serving.
func (wp *WorkerPool) run(task Task) {
	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("Task panicked", zap.Any("panic", p))
		}
	}()
	if err := task(); err != nil {
		zap.L().Error("Task execution failed", zap.Error(err))
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

// Close stops accepting tasks; queued ones still run. Safe to call twice.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if !wp.closed {
		wp.closed = true
		close(wp.pool)
	}
}
