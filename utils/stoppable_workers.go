package utils

import (
	"context"
	"sync"

	goutils "go.viam.com/utils"
)

// StoppableWorkers is a group of goroutines sharing one context. Stop cancels the context and
// waits for every goroutine to return. Panics in a worker are captured and logged instead of
// crashing the process.
type StoppableWorkers struct {
	mu         sync.Mutex
	ctx        context.Context
	cancelFunc func()
	active     sync.WaitGroup
}

// NewStoppableWorkers starts funcs in separate goroutines with a context derived from parent.
func NewStoppableWorkers(parent context.Context, funcs ...func(context.Context)) *StoppableWorkers {
	ctx, cancelFunc := context.WithCancel(parent)
	sw := &StoppableWorkers{ctx: ctx, cancelFunc: cancelFunc}
	sw.Add(funcs...)
	return sw
}

// Add starts more workers. It does nothing once Stop has been called.
func (sw *StoppableWorkers) Add(funcs ...func(context.Context)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.ctx.Err() != nil {
		return
	}

	sw.active.Add(len(funcs))
	for _, f := range funcs {
		goutils.PanicCapturingGo(func() {
			defer sw.active.Done()
			f(sw.ctx)
		})
	}
}

// Stop cancels the workers' context and waits for them to return. Workers blocked on anything
// other than the context must be unblocked by the caller first.
func (sw *StoppableWorkers) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.cancelFunc()
	sw.active.Wait()
}

// Context returns the context the workers run with.
func (sw *StoppableWorkers) Context() context.Context {
	return sw.ctx
}
