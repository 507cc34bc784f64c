package docsdk

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Future is the pending outcome of a call started by an AsyncClient.
type Future[T any] struct {
	done   chan struct{}
	result *Result[T]
	err    error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(result *Result[T], err error) {
	f.result = result
	f.err = err
	close(f.done)
}

// Done is closed once the call finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether Get would return without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get waits for the call or for ctx. Cancelling ctx only stops the wait; the
// call itself is bound to the context it was started with.
func (f *Future[T]) Get(ctx context.Context) (*Result[T], error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// workerPool bounds the number of calls running at once.
type workerPool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &workerPool{sem: semaphore.NewWeighted(int64(workers))}
}

// submit runs call on a pool worker and returns immediately. Calls waiting
// for a free worker give up when ctx ends.
func submit[T any](p *workerPool, ctx context.Context, call func(context.Context) (*Result[T], error)) *Future[T] {
	f := newFuture[T]()

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		f.complete(nil, ErrClientClosed)
		return f
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(ctx, 1); err != nil {
			f.complete(nil, err)
			return
		}
		defer p.sem.Release(1)

		var (
			result *Result[T]
			err    error
		)
		defer func() {
			if r := recover(); r != nil {
				result, err = nil, fmt.Errorf("docsdk call panicked: %v", r)
			}
			f.complete(result, err)
		}()

		result, err = call(ctx)
	}()

	return f
}

// close rejects new calls and waits for the submitted ones.
func (p *workerPool) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
}
