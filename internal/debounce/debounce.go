// Package debounce delays a call until its trigger has been quiet for a
// fixed window.
package debounce

import (
	"sync"
	"time"
)

// DefaultWait is the quiescence window used by calendar list tracking.
const DefaultWait = 500 * time.Millisecond

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type settings struct {
	afterFunc AfterFunc
}

// Option configures a Debouncer.
type Option func(*settings)

// WithAfterFunc replaces the timer source, for tests.
func WithAfterFunc(af AfterFunc) Option {
	return func(s *settings) {
		s.afterFunc = af
	}
}

// Debouncer runs fn once, wait after the most recent Trigger, with the
// value passed to that Trigger. Each Trigger replaces the pending call.
type Debouncer[T any] struct {
	mu        sync.Mutex
	wait      time.Duration
	fn        func(T)
	afterFunc AfterFunc
	timer     Timer
	gen       uint64
	stopped   bool
}

// New returns a Debouncer calling fn.
func New[T any](wait time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	s := settings{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(&s)
	}
	return &Debouncer[T]{
		wait:      wait,
		fn:        fn,
		afterFunc: s.afterFunc,
	}
}

// Trigger (re)starts the quiet window. After Stop it does nothing.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.afterFunc(d.wait, func() {
		d.fire(gen, v)
	})
}

// fire runs fn unless a later Trigger, Cancel or Stop superseded gen.
// A timer whose Stop lost the race still lands here and is discarded.
func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending call, if any. Later Triggers still work.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending call and disables the debouncer for good.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
