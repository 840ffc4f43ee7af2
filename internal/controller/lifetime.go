package controller

import (
	"context"
	"sync"
)

// Lifetime scopes the fetches of one mounted screen. Reset cancels every
// outstanding fetch and starts a new epoch; Close does the same for good.
// Results from a past epoch are never applied.
type Lifetime struct {
	mu     sync.Mutex
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	epoch  uint64
	closed bool
}

// NewLifetime creates a lifetime whose contexts derive from parent.
func NewLifetime(parent context.Context) *Lifetime {
	if parent == nil {
		parent = context.Background()
	}
	l := &Lifetime{parent: parent}
	l.ctx, l.cancel = context.WithCancel(parent)
	return l
}

// Context returns the context of the current epoch.
func (l *Lifetime) Context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx
}

// Reset cancels outstanding fetches. It is a no-op once closed.
func (l *Lifetime) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.cancel()
	l.ctx, l.cancel = context.WithCancel(l.parent)
	l.epoch++
}

// Close cancels outstanding fetches; no later result is applied.
func (l *Lifetime) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	l.epoch++
}

// Closed reports whether Close was called.
func (l *Lifetime) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Lifetime) scope() (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctx, l.epoch
}

func (l *Lifetime) live(epoch uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && l.epoch == epoch
}
