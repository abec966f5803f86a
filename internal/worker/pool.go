// Package worker runs blocking jobs off the UI goroutine. Each job returns a
// Future; finished jobs are also delivered on a completion channel that the
// UI drains.
package worker

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/logger"
)

// DefaultCompletionBuffer is the capacity of the completion channel
const DefaultCompletionBuffer = 64

// ErrPoolClosed is returned by futures submitted after Close
var ErrPoolClosed = errors.New("worker pool closed")

// Job is the unit of work. It should check ctx between steps.
type Job func(ctx context.Context) (any, error)

// Completion reports a finished job
type Completion struct {
	ID     string
	Name   string
	Result any
	Err    error
}

// Cancelled reports whether the job ended because it was cancelled
func (c Completion) Cancelled() bool {
	return errors.Is(c.Err, context.Canceled)
}

// Future is the handle of a submitted job
type Future struct {
	id     string
	name   string
	cancel context.CancelFunc
	done   chan struct{}

	result any
	err    error
}

// ID returns the job id
func (f *Future) ID() string { return f.id }

// Name returns the name the job was submitted with
func (f *Future) Name() string { return f.name }

// Cancel cancels the job context
func (f *Future) Cancel() { f.cancel() }

// Done is closed when the job has finished
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the job has finished and returns its result
func (f *Future) Wait() (any, error) {
	<-f.done
	return f.result, f.err
}

// Pool runs at most n jobs at a time
type Pool struct {
	sem         *semaphore.Weighted
	ctx         context.Context
	cancel      context.CancelFunc
	completions chan Completion

	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	futures map[string]*Future
}

// NewPool creates a pool running at most maxWorkers jobs concurrently
func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		sem:         semaphore.NewWeighted(int64(maxWorkers)),
		ctx:         ctx,
		cancel:      cancel,
		completions: make(chan Completion, DefaultCompletionBuffer),
		futures:     make(map[string]*Future),
	}
}

// Completions delivers one Completion per finished job. The channel is
// closed by Close once every job has finished.
func (p *Pool) Completions() <-chan Completion {
	return p.completions
}

// Submit schedules job and returns its future
func (p *Pool) Submit(name string, job Job) *Future {
	ctx, cancel := context.WithCancel(p.ctx)
	f := &Future{
		id:     uuid.New().String(),
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		cancel()
		f.err = ErrPoolClosed
		close(f.done)
		return f
	}
	p.futures[f.id] = f
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx, f, job)
	return f
}

// Active returns the number of submitted jobs that have not finished
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.futures)
}

// CancelAll cancels every running or queued job
func (p *Pool) CancelAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.futures {
		f.cancel()
	}
}

// Close cancels outstanding jobs, waits for them and closes the completion
// channel. Completions not drained by then are dropped.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	go func() {
		for range p.completions {
		}
	}()
	p.wg.Wait()
	close(p.completions)
}

func (p *Pool) run(ctx context.Context, f *Future, job Job) {
	defer p.wg.Done()
	defer f.cancel()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.finish(f, nil, err)
		return
	}
	defer p.sem.Release(1)

	if err := ctx.Err(); err != nil {
		p.finish(f, nil, err)
		return
	}

	result, err := p.call(ctx, f, job)
	p.finish(f, result, err)
}

// call runs job, turning a panic into an error so one job cannot take the
// application down
func (p *Pool) call(ctx context.Context, f *Future, job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger.Errorf("Job %s (%s) panicked", f.name, f.id)
			logger.HandlePanic(r, stack, nil)
			err = &apperr.PanicError{Op: "job " + f.name, Value: r, Stack: stack}
		}
	}()
	return job(ctx)
}

func (p *Pool) finish(f *Future, result any, err error) {
	f.result = result
	f.err = err
	close(f.done)

	p.mu.Lock()
	delete(p.futures, f.id)
	p.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Debugf("Job %s (%s) failed: %v", f.name, f.id, err)
	}
	p.completions <- Completion{ID: f.id, Name: f.name, Result: result, Err: err}
}
