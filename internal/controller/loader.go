package controller

import (
	"context"
	"errors"
	"sync"
)

// Applier is a finished fetch waiting to be written into its controller.
type Applier interface {
	// Apply stores the result. It reports false when the result is stale.
	Apply() bool
	// Outcome is the fetch error, if any.
	Outcome() error
}

// Fetch performs one backend call and returns its result unapplied. It is
// safe to run on any goroutine.
type Fetch func() Applier

// Result is the outcome of one Loader fetch.
type Result[T any] struct {
	Value T
	Err   error

	owner *Loader[T]
	epoch uint64
	gen   uint64
}

// Apply writes the result into the loader that started it.
func (r Result[T]) Apply() bool { return r.owner.apply(r) }

// Outcome returns Err.
func (r Result[T]) Outcome() error { return r.Err }

// Loader holds one piece of remotely fetched state. Start and Apply must be
// called from one goroutine; the fetch itself may run anywhere.
type Loader[T any] struct {
	Loading bool
	Loaded  bool
	Data    T
	Err     error

	// OnApply runs after a fresh result is stored.
	OnApply func(T, error)

	life *Lifetime
	gen  uint64
}

// NewLoader creates a loader bound to life.
func NewLoader[T any](life *Lifetime) *Loader[T] {
	return &Loader[T]{life: life}
}

// Start marks the loader loading and returns the fetch to run. Starting
// again supersedes any fetch still in flight.
func (l *Loader[T]) Start(fn func(context.Context) (T, error)) func() Result[T] {
	ctx, epoch := l.life.scope()
	l.gen++
	gen := l.gen
	l.Loading = true
	l.Err = nil

	return func() Result[T] {
		v, err := fn(ctx)
		return Result[T]{Value: v, Err: err, owner: l, epoch: epoch, gen: gen}
	}
}

// Run starts fn, waits for it and applies the result.
func (l *Loader[T]) Run(fn func(context.Context) (T, error)) error {
	r := l.Start(fn)()
	r.Apply()
	return r.Err
}

func (l *Loader[T]) apply(r Result[T]) bool {
	if r.gen != l.gen || !l.life.live(r.epoch) {
		return false
	}
	l.Loading = false
	l.Loaded = true
	l.Data = r.Value
	l.Err = r.Err
	if l.OnApply != nil {
		l.OnApply(r.Value, r.Err)
	}
	return true
}

// Erase adapts a typed fetch to Fetch.
func Erase[T any](f func() Result[T]) Fetch {
	if f == nil {
		return nil
	}
	return func() Applier { return f() }
}

// RunAll runs fetches concurrently, then applies their results in order.
// Nil fetches are skipped. The returned error joins every fetch error.
func RunAll(fetches ...Fetch) error {
	results := make([]Applier, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		if f == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f()
		}()
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r == nil {
			continue
		}
		r.Apply()
		if err := r.Outcome(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
