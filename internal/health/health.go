// Package health runs named checks and serves their report over HTTP.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"grimm.is/langportal/internal/clock"
)

// Status represents the health status of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check represents a single health check.
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// Report represents the overall health report.
type Report struct {
	Status    Status           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// Names returns the check names in order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r.Checks))
	for name := range r.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checker performs health checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
	cache  *Report
	ttl    time.Duration
	clock  clock.Clock
}

// CheckFunc is a function that performs a health check.
type CheckFunc func(ctx context.Context) Check

// Option configures a Checker.
type Option func(*Checker)

// WithTTL sets how long a report is reused. Zero disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(c *Checker) { c.ttl = ttl }
}

// WithClock sets the clock used for timestamps and caching.
func WithClock(clk clock.Clock) Option {
	return func(c *Checker) { c.clock = clk }
}

// NewChecker creates a new health checker with no checks.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		checks: make(map[string]CheckFunc),
		ttl:    5 * time.Second,
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a health check.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
	c.cache = nil
}

// Check runs all health checks concurrently and returns a report. The
// overall status is the worst of the individual ones.
func (c *Checker) Check(ctx context.Context) Report {
	c.mu.RLock()
	if c.cache != nil && c.clock.Now().Sub(c.cache.Timestamp) < c.ttl {
		report := *c.cache
		c.mu.RUnlock()
		return report
	}
	checkFuncs := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checkFuncs[name] = fn
	}
	c.mu.RUnlock()

	checks := make(map[string]Check)
	overallStatus := StatusHealthy

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, fn := range checkFuncs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := c.clock.Now()
			check := fn(ctx)
			check.Name = name
			check.LastChecked = start
			check.Duration = c.clock.Now().Sub(start)

			mu.Lock()
			defer mu.Unlock()
			checks[name] = check
			switch {
			case check.Status == StatusUnhealthy:
				overallStatus = StatusUnhealthy
			case check.Status == StatusDegraded && overallStatus != StatusUnhealthy:
				overallStatus = StatusDegraded
			}
		}()
	}
	wg.Wait()

	report := Report{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: c.clock.Now(),
	}

	c.mu.Lock()
	c.cache = &report
	c.mu.Unlock()

	return report
}

// Handler returns an HTTP handler for health checks.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		report := c.Check(ctx)

		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK) // degraded is still OK
		}
		json.NewEncoder(w).Encode(report)
	}
}

// LivenessHandler returns a simple liveness probe handler.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

// ReadinessHandler returns a readiness probe handler.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if c.Check(ctx).Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}

// Probe turns fn into a CheckFunc: healthy when fn succeeds, otherwise
// failed with the error as message.
func Probe(failed Status, ok string, fn func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) Check {
		if err := fn(ctx); err != nil {
			return Check{Status: failed, Message: err.Error()}
		}
		return Check{Status: StatusHealthy, Message: ok}
	}
}
