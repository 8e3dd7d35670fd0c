// Package view manages the lifecycle of a list page: fetch, normalize into
// view models, and mutate with rollback. Pages hold no source of truth; every
// load replaces the whole list from the server.
package view

import (
	"context"
	"sync"

	"kampomido/internal/toast"
	dErrors "kampomido/pkg/domain-errors"
)

// State is the page lifecycle. Initial state is always StateLoading; terminal
// states are success, empty, and error; a user-triggered refetch returns the
// page to loading.
type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

// Page drives one list screen over view models of type T.
//
// Mutations are optimistic with rollback, applied uniformly: the local list is
// snapshotted, mutated immediately, and restored when the server call fails.
// The failure additionally surfaces as an error toast.
type Page[T any] struct {
	mu      sync.Mutex
	state   State
	items   []T
	message string
	toasts  toast.Sink
}

// NewPage creates a page in the loading state.
func NewPage[T any](toasts toast.Sink) *Page[T] {
	return &Page[T]{state: StateLoading, toasts: toasts}
}

// Load fetches the list and settles the page into success, empty, or error.
// Calling it again is the refetch path and passes through loading first.
func (p *Page[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error), failureMessage string) {
	p.mu.Lock()
	p.state = StateLoading
	p.message = ""
	p.mu.Unlock()

	items, err := fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.message = dErrors.UserMessage(err, failureMessage)
		p.items = nil
		return
	}
	p.items = items
	if len(items) == 0 {
		p.state = StateEmpty
		return
	}
	p.state = StateSuccess
}

// Mutate applies a list mutation optimistically, then runs the server call.
// On failure the previous list is restored, the error lands in a toast, and
// the error is returned for any extra page-level handling.
func (p *Page[T]) Mutate(ctx context.Context, apply func([]T) []T, call func(context.Context) error, failureMessage string) error {
	p.mu.Lock()
	snapshot := make([]T, len(p.items))
	copy(snapshot, p.items)
	p.items = apply(p.items)
	p.settleLocked()
	p.mu.Unlock()

	err := call(ctx)
	if err == nil {
		return nil
	}

	p.mu.Lock()
	p.items = snapshot
	p.settleLocked()
	p.mu.Unlock()

	if p.toasts != nil {
		p.toasts.Error(dErrors.UserMessage(err, failureMessage))
	}
	return err
}

// State returns the current lifecycle state.
func (p *Page[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Items returns a copy of the current view models.
func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// ErrorMessage returns the message shown in the error state.
func (p *Page[T]) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

// settleLocked recomputes success/empty after a local mutation. Only called
// with the lock held and only from non-loading states.
func (p *Page[T]) settleLocked() {
	if p.state == StateLoading || p.state == StateError {
		return
	}
	if len(p.items) == 0 {
		p.state = StateEmpty
		return
	}
	p.state = StateSuccess
}
