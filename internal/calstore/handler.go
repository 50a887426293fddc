package calstore

import (
	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Handler is the write accessor handed to views.
type Handler struct {
	store *Store
}

// Handler returns the write accessor. Calling it on a nil store is allowed;
// every method of the result then reports ErrNoProvider.
func (s *Store) Handler() Handler {
	return Handler{store: s}
}

// SetDate jumps to date (YYYY-MM-DD). Bounds are not applied.
func (h Handler) SetDate(date string) error {
	return h.store.Dispatch(calstate.SetDate{Date: date})
}

// AddMonth moves to the end of the next month.
func (h Handler) AddMonth() error {
	return h.store.Dispatch(calstate.AddMonth{})
}

// SubMonth moves to the end of the previous month.
func (h Handler) SubMonth() error {
	return h.store.Dispatch(calstate.SubMonth{})
}

// Init replaces the selected date and bounds. An empty date is a no-op, so
// views can pass their optional initial props straight through.
// Inverted bounds are rejected before dispatch.
func (h Handler) Init(date, minDate, maxDate string) error {
	if h.store == nil {
		return ErrNoProvider
	}
	if date == "" {
		return nil
	}
	if _, err := dateutil.NewBounds(minDate, maxDate); err != nil {
		return err
	}
	return h.store.Dispatch(calstate.InitDate{Date: date, MinDate: minDate, MaxDate: maxDate})
}
