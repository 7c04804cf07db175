package timerqueue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Callback is invoked on the worker goroutine with the argument supplied when
// the event was scheduled.
type Callback func(arg any)

// Event is a handle to one scheduled callback. Events are periodic: after each
// firing the worker re-arms the event for another timeout.
//
// An Event is reference counted. The queue holds one reference for as long as
// the event is linked into it, and the worker takes a second one for the
// duration of a firing. When the last reference is dropped the event is
// released: its callback and argument are cleared and it can never fire again.
type Event struct {
	id string

	// schedule and loc are set once for cron events and never change.
	schedule cron.Schedule
	loc      *time.Location

	mu      sync.Mutex // guards the fields below for readers outside the queue lock
	fn      Callback
	arg     any
	timeout time.Duration
	armedAt time.Time
	expiry  time.Time

	// Store bookkeeping, guarded by the owning queue's lock.
	index int
	seq   uint64

	refs      atomic.Int32
	released  atomic.Bool
	cancelled atomic.Bool
	fires     atomic.Uint64

	onRelease func(*Event)
}

func newEvent(fn Callback, arg any, timeout time.Duration) *Event {
	e := &Event{
		id:      uuid.NewString(),
		fn:      fn,
		arg:     arg,
		timeout: timeout,
		index:   -1,
	}
	e.refs.Store(1)
	return e
}

// ID returns the unique identifier assigned at schedule time.
func (e *Event) ID() string { return e.id }

// Timeout returns the duration between the last arming and the current expiry.
func (e *Event) Timeout() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeout
}

// Expiry returns the absolute time at which the event is next due.
func (e *Event) Expiry() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expiry
}

// ArmedAt returns the time the event was last armed.
func (e *Event) ArmedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.armedAt
}

// Arg returns the callback argument, or nil once the event is released.
func (e *Event) Arg() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.arg
}

// Refs returns the current reference count.
func (e *Event) Refs() int { return int(e.refs.Load()) }

// Released reports whether the last reference has been dropped.
func (e *Event) Released() bool { return e.released.Load() }

// Fires returns how many times the callback has been invoked.
func (e *Event) Fires() uint64 { return e.fires.Load() }

// Cron reports whether the event re-arms by a cron schedule.
func (e *Event) Cron() bool { return e.schedule != nil }

// armAfter sets a new timeout and arms the event relative to now.
// Caller holds the queue lock when the event may be linked.
func (e *Event) armAfter(now time.Time, timeout time.Duration) {
	e.mu.Lock()
	e.timeout = timeout
	e.armedAt = now
	e.expiry = now.Add(timeout)
	e.mu.Unlock()
}

// rearm arms the event for its next period. Cron events derive the timeout
// from their schedule so expiry stays armedAt + timeout and keeps now's
// monotonic reading. It reports false, leaving the event untouched, when a
// cron schedule has no activation after now.
func (e *Event) rearm(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.schedule != nil {
		next := e.schedule.Next(now.In(e.loc))
		if next.IsZero() {
			return false
		}
		e.timeout = next.Sub(now)
		if e.timeout < 0 {
			e.timeout = 0
		}
	}
	e.armedAt = now
	e.expiry = now.Add(e.timeout)
	return true
}

// callback returns the callback and its argument, or a nil callback once released.
func (e *Event) callback() (Callback, any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fn, e.arg
}

func (e *Event) ref() {
	e.refs.Add(1)
}

func (e *Event) unref() {
	n := e.refs.Add(-1)
	switch {
	case n == 0:
		e.release()
	case n < 0:
		panic("timerqueue: event reference count dropped below zero")
	}
}

func (e *Event) release() {
	if !e.released.CompareAndSwap(false, true) {
		return
	}
	e.mu.Lock()
	e.fn = nil
	e.arg = nil
	e.mu.Unlock()
	if e.onRelease != nil {
		e.onRelease(e)
	}
}
