// Package toast carries ephemeral user feedback. Every toast auto-dismisses
// on a cancellable timer so nothing fires after the center is closed.
package toast

//go:generate mockgen -source=toast.go -destination=mocks/mocks.go -package=mocks Sink

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type classifies a toast for rendering.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// Toast is one message shown to the user.
type Toast struct {
	ID      string
	Message string
	Type    Type
}

// DefaultTTL matches the dashboard's ~3 second auto-dismiss.
const DefaultTTL = 3 * time.Second

// Sink is the write side handed to pages and services.
type Sink interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Center owns active toasts and their dismiss timers. Timer handles are kept
// so an explicit dismiss or Close stops the pending auto-dismiss.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	active   map[string]*entry
	order    []string
	onChange func([]Toast)
	closed   bool
}

type entry struct {
	toast Toast
	timer *time.Timer
}

// Option configures the Center.
type Option func(*Center)

// WithTTL overrides the auto-dismiss delay. Tests shorten it.
func WithTTL(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithOnChange registers a callback invoked with the active toasts after every
// show or dismiss. The callback runs outside the lock.
func WithOnChange(fn func([]Toast)) Option {
	return func(c *Center) {
		c.onChange = fn
	}
}

// NewCenter creates a toast center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		active: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show displays a toast and schedules its auto-dismiss.
func (c *Center) Show(message string, typ Type) Toast {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Toast{}
	}
	t := Toast{ID: uuid.NewString(), Message: message, Type: typ}
	e := &entry{toast: t}
	e.timer = time.AfterFunc(c.ttl, func() { c.Dismiss(t.ID) })
	c.active[t.ID] = e
	c.order = append(c.order, t.ID)
	c.mu.Unlock()

	c.notify()
	return t
}

func (c *Center) Success(message string) { c.Show(message, TypeSuccess) }
func (c *Center) Error(message string)   { c.Show(message, TypeError) }
func (c *Center) Info(message string)    { c.Show(message, TypeInfo) }

// Dismiss removes a toast and cancels its timer. Dismissing an already-gone
// toast is a no-op, which also makes the timer callback safe after an
// explicit close.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	e, ok := c.active[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	e.timer.Stop()
	delete(c.active, id)
	for i, active := range c.order {
		if active == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.notify()
}

// Active returns the visible toasts in display order.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Close stops every pending timer and drops all toasts. Further Shows are
// ignored; used on shutdown so no timer fires into disposed state.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for _, e := range c.active {
		e.timer.Stop()
	}
	c.active = make(map[string]*entry)
	c.order = nil
}

func (c *Center) snapshot() []Toast {
	out := make([]Toast, 0, len(c.order))
	for _, id := range c.order {
		if e, ok := c.active[id]; ok {
			out = append(out, e.toast)
		}
	}
	return out
}

func (c *Center) notify() {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	snap := c.snapshot()
	c.mu.Unlock()
	c.onChange(snap)
}

var _ Sink = (*Center)(nil)
