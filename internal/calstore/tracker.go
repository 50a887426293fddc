package calstore

import (
	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/debounce"
)

// Tracker turns "this date is now visible in a scrolling list" reports into
// a SetDate dispatch once the list has been still for the store's track
// wait. Closing the store cancels a pending dispatch.
type Tracker struct {
	store *Store
	d     *debounce.Debouncer[string]
}

// NewTracker creates a tracker owned by the store.
func (s *Store) NewTracker() (*Tracker, error) {
	if s == nil {
		return nil, ErrNoProvider
	}

	t := &Tracker{store: s}
	var opts []debounce.Option
	if s.afterFunc != nil {
		opts = append(opts, debounce.WithAfterFunc(s.afterFunc))
	}
	t.d = debounce.New(s.trackWait, t.commit, opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		t.d.Stop()
		return nil, ErrClosed
	}
	s.trackers = append(s.trackers, t)
	return t, nil
}

// Visible reports the date currently at the top of the list.
func (t *Tracker) Visible(date string) {
	t.d.Trigger(date)
}

// Pending reports whether a dispatch is waiting for the list to settle.
func (t *Tracker) Pending() bool {
	return t.d.Pending()
}

// Cancel drops a pending dispatch.
func (t *Tracker) Cancel() {
	t.d.Cancel()
}

func (t *Tracker) stop() {
	t.d.Stop()
}

func (t *Tracker) commit(date string) {
	st, err := t.store.Snapshot()
	if err != nil || st.SelectedDateString == date {
		return
	}
	if err := t.store.Dispatch(calstate.SetDate{Date: date}); err != nil {
		t.store.logger.Warn("tracked date rejected", "date", date, "error", err)
	}
}
