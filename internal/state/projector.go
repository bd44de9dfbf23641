// Package state projects asynchronous domain operations into the
// loading/error/data triple an interface layer renders from. Every tracked
// operation moves idle -> pending -> fulfilled | rejected and the projection
// is immediately available for the next call.
package state

import (
	"context"
	"sync"
)

// Status is the lifecycle position of the most recent operation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

// Snapshot is one consistent view of a projection.
type Snapshot[T any] struct {
	Status  Status
	Loading bool
	// Err holds the failure of the last rejected operation. Cleared by the
	// next fulfilled one.
	Err  error
	Data T
}

// Projection tracks the lifecycle of operations sharing one piece of
// projected state.
//
// Overlapping calls are not queued: each flips the shared loading flag on
// start and on settle, so the last call to settle determines the visible
// flags. That mirrors the source behavior and is acceptable for a single
// interactive caller.
type Projection[T any] struct {
	mu   sync.Mutex
	snap Snapshot[T]
}

// NewProjection starts idle with the given initial data.
func NewProjection[T any](initial T) *Projection[T] {
	return &Projection[T]{snap: Snapshot[T]{Status: StatusIdle, Data: initial}}
}

// Snapshot returns the current view.
func (p *Projection[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Run executes op under the pending/fulfilled/rejected lifecycle. The
// operation's error is recorded in the snapshot and returned to the caller
// unchanged; it is never swallowed. On success the returned data replaces
// the projected data and any prior failure is cleared.
func (p *Projection[T]) Run(ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	p.mu.Lock()
	p.snap.Status = StatusPending
	p.snap.Loading = true
	p.mu.Unlock()

	data, err := op(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Loading = false
	if err != nil {
		p.snap.Status = StatusRejected
		p.snap.Err = err
		return data, err
	}
	p.snap.Status = StatusFulfilled
	p.snap.Err = nil
	p.snap.Data = data
	return data, nil
}

// Apply runs a synchronous reducer over the projected data, outside the
// async lifecycle. Used for local-only state such as a selected date.
func (p *Projection[T]) Apply(fn func(T) T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Data = fn(p.snap.Data)
}
