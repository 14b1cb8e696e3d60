// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package asyncstate tracks the (data, loading, error) state of one fetchable
resource.

# Architecture

A [Thunk] couples three action creators (pending, fulfilled, rejected) with a
payload function. Dispatching it against a [Store] moves the store through
pending and then exactly one terminal action.

Two guards run on every dispatch:

  - De-duplication: a dispatch whose argument matches the one already in flight
    joins it instead of issuing a second request.
  - Generations: each issued request gets a new generation number. A terminal
    action from an older generation is dropped, so the last issued request wins.
*/
package asyncstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FallbackError is stored when a rejection carries no usable message.
const FallbackError = "Something went wrong"

// DefaultTimeout bounds a shared call once it is detached from its callers.
const DefaultTimeout = 30 * time.Second

// # State

// State is the observable triple for one resource.
//
// Loading and a terminal outcome never coexist: while Loading is true, Error is nil.
type State[T any] struct {
	Data    T       `json:"data"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

// # Actions

// Phase is the lifecycle step an [Action] represents.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Action is one state transition.
type Action[T any] struct {
	// Type is "<prefix>/<phase>".
	Type       string
	Phase      Phase
	Payload    T
	Error      string
	Generation uint64
}

// # Store

// Store holds the state of one resource and applies actions to it.
type Store[T any] struct {
	mu          sync.Mutex
	state       State[T]
	generation  uint64
	subscribers map[int]func(Action[T])
	nextID      int

	flights singleflight.Group
}

// NewStore constructs an idle store holding initial as its data.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		state:       State[T]{Data: initial},
		subscribers: make(map[int]func(Action[T])),
	}
}

// Snapshot returns a copy of the current state.
func (store *Store[T]) Snapshot() State[T] {
	store.mu.Lock()
	defer store.mu.Unlock()

	snapshot := store.state
	if store.state.Error != nil {
		message := *store.state.Error
		snapshot.Error = &message
	}
	return snapshot
}

// Subscribe registers fn for every applied action and returns its cancel func.
//
// fn runs outside the store lock, in the dispatching goroutine.
func (store *Store[T]) Subscribe(fn func(Action[T])) func() {
	store.mu.Lock()
	defer store.mu.Unlock()

	id := store.nextID
	store.nextID++
	store.subscribers[id] = fn

	return func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		delete(store.subscribers, id)
	}
}

// Apply reduces action into the state. Actions of a superseded generation are
// ignored; the return value reports whether the action applied.
func (store *Store[T]) Apply(action Action[T]) bool {
	store.mu.Lock()

	if action.Generation != store.generation {
		store.mu.Unlock()
		return false
	}

	switch action.Phase {
	case PhasePending:
		store.state.Loading = true
		store.state.Error = nil
	case PhaseFulfilled:
		store.state.Loading = false
		store.state.Error = nil
		store.state.Data = action.Payload
	case PhaseRejected:
		message := action.Error
		store.state.Loading = false
		store.state.Error = &message
	}

	listeners := make([]func(Action[T]), 0, len(store.subscribers))
	for _, fn := range store.subscribers {
		listeners = append(listeners, fn)
	}
	store.mu.Unlock()

	for _, fn := range listeners {
		fn(action)
	}
	return true
}

// begin issues a new generation.
func (store *Store[T]) begin() uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.generation++
	return store.generation
}

// Generation returns the latest issued generation.
func (store *Store[T]) Generation() uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.generation
}

// # Thunk

// Thunk binds a type prefix to a payload function of one argument.
type Thunk[A, T any] struct {
	prefix  string
	fn      func(context.Context, A) (T, error)
	key     func(A) string
	timeout time.Duration
}

// NewThunk builds a thunk. prefix must be unique per resource.
func NewThunk[A, T any](prefix string, fn func(context.Context, A) (T, error)) *Thunk[A, T] {
	return &Thunk[A, T]{
		prefix:  prefix,
		fn:      fn,
		key:     func(arg A) string { return fmt.Sprintf("%v", arg) },
		timeout: DefaultTimeout,
	}
}

// WithTimeout overrides how long a shared call may run.
func (thunk *Thunk[A, T]) WithTimeout(timeout time.Duration) *Thunk[A, T] {
	if timeout > 0 {
		thunk.timeout = timeout
	}
	return thunk
}

// WithKey overrides how the argument maps to a resource identity for de-duplication.
func (thunk *Thunk[A, T]) WithKey(key func(A) string) *Thunk[A, T] {
	thunk.key = key
	return thunk
}

// Prefix returns the action-type prefix.
func (thunk *Thunk[A, T]) Prefix() string {
	return thunk.prefix
}

// Pending creates the pending action.
func (thunk *Thunk[A, T]) Pending(generation uint64) Action[T] {
	return Action[T]{Type: thunk.prefix + "/" + string(PhasePending), Phase: PhasePending, Generation: generation}
}

// Fulfilled creates the fulfilled action carrying payload.
func (thunk *Thunk[A, T]) Fulfilled(generation uint64, payload T) Action[T] {
	return Action[T]{Type: thunk.prefix + "/" + string(PhaseFulfilled), Phase: PhaseFulfilled, Payload: payload, Generation: generation}
}

// Rejected creates the rejected action. A nil error or an empty message
// stores [FallbackError].
func (thunk *Thunk[A, T]) Rejected(generation uint64, err error) Action[T] {
	message := FallbackError
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return Action[T]{Type: thunk.prefix + "/" + string(PhaseRejected), Phase: PhaseRejected, Error: message, Generation: generation}
}

// flight is the shared outcome of one issued request.
type flight[T any] struct {
	payload    T
	err        error
	generation uint64
}

/*
Dispatch runs the payload function against store.

Description: Applies pending, calls fn once (or joins the in-flight call for
the same argument) and applies exactly one terminal action for the issued
generation.

The shared call keeps the first caller's values but not its cancellation; it
is bounded by the thunk timeout instead. Cancelling ctx only stops this
caller's wait.

Returns:
  - T: the payload on success
  - error: the failure that produced the rejected action
*/
func (thunk *Thunk[A, T]) Dispatch(ctx context.Context, store *Store[T], arg A) (T, error) {
	key := thunk.prefix + "|" + thunk.key(arg)

	resultChan := store.flights.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), thunk.timeout)
		defer cancel()

		generation := store.begin()
		store.Apply(thunk.Pending(generation))

		payload, err := thunk.invoke(shared, arg)
		if err != nil {
			store.Apply(thunk.Rejected(generation, err))
		} else {
			store.Apply(thunk.Fulfilled(generation, payload))
		}

		return flight[T]{payload: payload, err: err, generation: generation}, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case result := <-resultChan:
		outcome := result.Val.(flight[T])
		return outcome.payload, outcome.err
	}
}

// invoke calls fn and turns a panic into an error.
func (thunk *Thunk[A, T]) invoke(ctx context.Context, arg A) (payload T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			if asErr, ok := recovered.(error); ok {
				err = asErr
				return
			}
			err = errNonError
		}
	}()

	return thunk.fn(ctx, arg)
}

// errNonError stands in for a panic value that is not an error.
var errNonError = errors.New(FallbackError)
