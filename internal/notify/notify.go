// Package notify carries transient user-visible notifications ("toasts").
//
// The API facade pushes an error notification for every failed call; views
// show the most recent ones for a short time. A Center keeps a bounded
// history and fans new notifications out to subscribers.
package notify

import (
	"fmt"
	"sync"
	"time"

	"grimm.is/langportal/internal/clock"
)

// Level constants
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notification is one toast.
type Notification struct {
	ID        uint64    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier accepts notifications.
type Notifier interface {
	Notify(level, message string)
}

// Discard is a Notifier that drops everything.
type Discard struct{}

func (Discard) Notify(string, string) {}

// Func adapts a function to the Notifier interface.
type Func func(level, message string)

func (f Func) Notify(level, message string) { f(level, message) }

// Error is shorthand for n.Notify(LevelError, ...).
func Error(n Notifier, format string, args ...any) {
	n.Notify(LevelError, fmt.Sprintf(format, args...))
}

// Success is shorthand for n.Notify(LevelSuccess, ...).
func Success(n Notifier, format string, args ...any) {
	n.Notify(LevelSuccess, fmt.Sprintf(format, args...))
}

// Info is shorthand for n.Notify(LevelInfo, ...).
func Info(n Notifier, format string, args ...any) {
	n.Notify(LevelInfo, fmt.Sprintf(format, args...))
}

// Center stores recent notifications in a ring buffer and delivers new ones
// to subscribers without blocking the caller.
type Center struct {
	mu      sync.RWMutex
	entries []Notification
	size    int
	head    int
	count   int
	nextID  uint64
	clock   clock.Clock
	subs    map[int]chan Notification
	nextSub int
}

// NewCenter creates a Center keeping the last size notifications.
func NewCenter(size int, c clock.Clock) *Center {
	if size < 1 {
		size = 1
	}
	return &Center{
		entries: make([]Notification, size),
		size:    size,
		clock:   clock.Or(c),
		subs:    make(map[int]chan Notification),
	}
}

// Notify records a notification and delivers it to subscribers. A
// subscriber whose buffer is full misses the notification.
func (c *Center) Notify(level, message string) {
	c.mu.Lock()
	c.nextID++
	n := Notification{
		ID:        c.nextID,
		Level:     level,
		Message:   message,
		Timestamp: c.clock.Now(),
	}
	c.entries[c.head] = n
	c.head = (c.head + 1) % c.size
	if c.count < c.size {
		c.count++
	}
	subs := make([]chan Notification, 0, len(c.subs))
	for _, ch := range c.subs {
		subs = append(subs, ch)
	}
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribe returns a channel receiving new notifications and a function
// that unsubscribes and closes it.
func (c *Center) Subscribe(buffer int) (<-chan Notification, func()) {
	ch := make(chan Notification, buffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

// Last returns up to n most recent notifications, oldest first.
func (c *Center) Last(n int) []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n = min(n, c.count)
	if n <= 0 {
		return []Notification{}
	}

	result := make([]Notification, n)
	start := (c.head - n + c.size) % c.size
	for i := 0; i < n; i++ {
		result[i] = c.entries[(start+i)%c.size]
	}
	return result
}

// Active returns the notifications younger than ttl, oldest first.
func (c *Center) Active(ttl time.Duration) []Notification {
	now := c.clock.Now()
	var out []Notification
	for _, n := range c.Last(c.size) {
		if now.Sub(n.Timestamp) < ttl {
			out = append(out, n)
		}
	}
	return out
}

// Count returns the number of stored notifications.
func (c *Center) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}
