// Package calstore distributes one calendar state to every view of a
// calendar tree.
//
// A Store is created when a tree is mounted and passed by reference to the
// views that need it. Reads go through Snapshot or Subscribe; writes go
// through Dispatch or a Handler. A nil *Store is a wiring bug and every
// accessor reports ErrNoProvider.
package calstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/debounce"
)

// Store errors.
var (
	ErrNoProvider = errors.New("calendar store not provided: construct views with a *calstore.Store")
	ErrClosed     = errors.New("calendar store closed")
)

type subscriber struct {
	id int
	fn func(calstate.State)
}

// delivery is a published state and the subscribers registered when it
// was published.
type delivery struct {
	state calstate.State
	subs  []subscriber
}

// Store owns the state of one calendar tree.
type Store struct {
	// mu serializes dispatches so actions apply in call order.
	mu       sync.Mutex
	state    atomic.Pointer[calstate.State]
	subs     []subscriber
	nextID   int
	trackers []*Tracker
	closed   bool

	// outbox holds published states not yet delivered; notifying is set
	// while a call is draining it.
	outbox    []delivery
	notifying bool

	logger    *slog.Logger
	trackWait time.Duration
	afterFunc debounce.AfterFunc
}

type options struct {
	now       time.Time
	weekStart time.Weekday
	init      *calstate.InitDate
	logger    *slog.Logger
	trackWait time.Duration
	afterFunc debounce.AfterFunc
}

// Option configures a Store.
type Option func(*options) error

// WithNow sets the date the store starts on when no initial date is given.
func WithNow(now time.Time) Option {
	return func(o *options) error {
		o.now = now
		return nil
	}
}

// WithWeekStart sets the first column of the month grid.
func WithWeekStart(wd time.Weekday) Option {
	return func(o *options) error {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid week start %d", wd)
		}
		o.weekStart = wd
		return nil
	}
}

// WithInitialDate selects date on mount and installs the bounds.
// An empty date keeps "today" but still installs the bounds.
// Inverted or malformed bounds are rejected here, before any state exists.
func WithInitialDate(date, minDate, maxDate string) Option {
	return func(o *options) error {
		if _, err := dateutil.NewBounds(minDate, maxDate); err != nil {
			return err
		}
		if date != "" {
			if _, err := dateutil.ParseDate(date); err != nil {
				return err
			}
		}
		o.init = &calstate.InitDate{Date: date, MinDate: minDate, MaxDate: maxDate}
		return nil
	}
}

// WithLogger sets the logger for dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

// WithTrackWait sets the quiescence window of visibility trackers.
func WithTrackWait(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("negative track wait %s", d)
		}
		o.trackWait = d
		return nil
	}
}

// WithAfterFunc replaces the timer source of visibility trackers.
func WithAfterFunc(af debounce.AfterFunc) Option {
	return func(o *options) error {
		o.afterFunc = af
		return nil
	}
}

// New mounts a calendar tree and returns its store.
func New(opts ...Option) (*Store, error) {
	o := options{
		now:       time.Now(),
		logger:    slog.New(slog.DiscardHandler),
		trackWait: debounce.DefaultWait,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("configuring calendar store: %w", err)
		}
	}

	initial := calstate.NewWithWeekStart(o.now, o.weekStart)
	if o.init != nil {
		action := *o.init
		if action.Date == "" {
			action.Date = initial.SelectedDateString
		}
		next, err := calstate.Reduce(initial, action)
		if err != nil {
			return nil, err
		}
		initial = next
	}

	s := &Store{
		logger:    o.logger,
		trackWait: o.trackWait,
		afterFunc: o.afterFunc,
	}
	s.state.Store(&initial)
	return s, nil
}

// Snapshot returns the current state.
func (s *Store) Snapshot() (calstate.State, error) {
	if s == nil {
		return calstate.State{}, ErrNoProvider
	}
	return *s.state.Load(), nil
}

// MustSnapshot is Snapshot for views, panicking on a missing store.
func (s *Store) MustSnapshot() calstate.State {
	st, err := s.Snapshot()
	if err != nil {
		panic(err)
	}
	return st
}

// Dispatch applies a to the current state and broadcasts the result.
// Subscribers see states in the order they were published, one at a time.
// A dispatch made while another call is notifying, including one from a
// subscriber, is published at once and delivered by that call after the
// current round.
func (s *Store) Dispatch(a calstate.Action) error {
	if s == nil {
		return ErrNoProvider
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	prev := *s.state.Load()
	next, err := calstate.Reduce(prev, a)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("dispatch rejected", "action", actionName(a), "error", err)
		return err
	}
	s.state.Store(&next)
	s.outbox = append(s.outbox, delivery{state: next, subs: append([]subscriber(nil), s.subs...)})
	drain := !s.notifying
	s.notifying = true
	s.mu.Unlock()

	s.logger.Debug("dispatch",
		"action", actionName(a),
		"from", prev.SelectedDateString,
		"to", next.SelectedDateString,
		"week", next.SelectedWeekNumber,
		"weeks", next.WeekCountInMonth,
	)

	if drain {
		s.deliver()
	}
	return nil
}

// deliver notifies subscribers of queued states until the outbox is empty.
// Only one goroutine delivers at a time.
func (s *Store) deliver() {
	s.mu.Lock()
	for len(s.outbox) > 0 {
		d := s.outbox[0]
		s.outbox = s.outbox[1:]
		s.mu.Unlock()

		for _, sub := range d.subs {
			sub.fn(d.state)
		}

		s.mu.Lock()
	}
	s.notifying = false
	s.mu.Unlock()
}

// MustDispatch is Dispatch for wiring code that cannot handle an error.
// It panics on any error, including a closed store or a malformed date.
func (s *Store) MustDispatch(a calstate.Action) {
	if err := s.Dispatch(a); err != nil {
		panic(err)
	}
}

func actionName(a calstate.Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.String()
}

// Subscribe registers fn for every new state. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(calstate.State)) (func(), error) {
	if s == nil {
		return func() {}, ErrNoProvider
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}, ErrClosed
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}, nil
}

// Close unmounts the tree: pending tracker calls are cancelled before they
// fire, subscribers are dropped, and later writes return ErrClosed.
// The last snapshot stays readable.
func (s *Store) Close() error {
	if s == nil {
		return ErrNoProvider
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	trackers := s.trackers
	s.trackers = nil
	s.subs = nil
	s.outbox = nil
	s.mu.Unlock()

	for _, t := range trackers {
		t.stop()
	}
	return nil
}
