package tui

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/debounce"
	"github.com/javiermolinar/almanac/internal/mark"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// memRepo is an in-memory mark.Repository.
type memRepo struct {
	mu     sync.Mutex
	marks  map[string]*mark.Mark
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{marks: map[string]*mark.Mark{}}
}

func (r *memRepo) SetMark(ctx context.Context, m *mark.Mark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.marks[m.DateString()] = m
	return nil
}

func (r *memRepo) GetMark(ctx context.Context, date time.Time) (*mark.Mark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.marks[dateutil.Format(date)], nil
}

func (r *memRepo) DeleteMark(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dateutil.Format(date)
	if _, ok := r.marks[key]; !ok {
		return mark.ErrMarkNotFound
	}
	delete(r.marks, key)
	return nil
}

func (r *memRepo) ListMarksByDateRange(ctx context.Context, start, end time.Time) ([]*mark.Mark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, to := dateutil.Format(start), dateutil.Format(end)
	var out []*mark.Mark
	for date, m := range r.marks {
		if date >= from && date <= to {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memRepo) Close() error {
	return nil
}

// manualTimers collects tracker callbacks so tests decide when they run.
type manualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (m *manualTimers) AfterFunc(_ time.Duration, f func()) debounce.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (m *manualTimers) FireAll() {
	m.mu.Lock()
	due := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, t := range due {
		if !t.stopped {
			t.f()
		}
	}
}

// newTestModel builds a sized model over a fresh store selecting testNow.
// A nil cfg uses the defaults.
func newTestModel(t *testing.T, cfg *config.Config, opts ...calstore.Option) (Model, *memRepo) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	if cfg == nil {
		cfg = config.Default()
	}
	storeOpts := append([]calstore.Option{calstore.WithNow(testNow)}, opts...)
	store, err := calstore.New(storeOpts...)
	if err != nil {
		t.Fatalf("calstore.New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	repo := newMemRepo()
	m, err := New(store, repo, cfg, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model), repo
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil, nil, config.Default())
	if !errors.Is(err, calstore.ErrNoProvider) {
		t.Fatalf("err = %v, want ErrNoProvider", err)
	}
}

func TestNew_ClosedStore(t *testing.T) {
	store, err := calstore.New()
	if err != nil {
		t.Fatalf("calstore.New: %v", err)
	}
	_ = store.Close()

	if _, err := New(store, nil, config.Default()); !errors.Is(err, calstore.ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestNew_UsesStoreSnapshotAndConfig(t *testing.T) {
	cfg := config.Default()
	cfg.UI.View = config.ViewWeek
	cfg.Calendar.Locale = "ko"

	m, _ := newTestModel(t, cfg, calstore.WithInitialDate("2024-02-29", "", ""))

	if m.state.SelectedDateString != "2024-02-29" {
		t.Errorf("selected = %s, want 2024-02-29", m.state.SelectedDateString)
	}
	if m.view != config.ViewWeek {
		t.Errorf("view = %s, want %s", m.view, config.ViewWeek)
	}
	if got := m.locale.MonthYear(m.state.SelectedDate); got != "2024년 2월" {
		t.Errorf("month header = %q, want %q", got, "2024년 2월")
	}
}

func TestInit_LoadsMarks(t *testing.T) {
	m, repo := newTestModel(t, nil)
	mk, _ := mark.New("2024-03-02", "rent")
	_ = repo.SetMark(context.Background(), mk)

	cmd := m.loadMarksIfNeeded()
	if cmd == nil {
		t.Fatal("expected a load command before any marks are loaded")
	}
	m, _ = send(t, m, cmd())
	if !m.marks.Has("2024-03-02") {
		t.Fatalf("marks = %v, want 2024-03-02", m.marks)
	}
	if m.marksFrom != "2024-02-25" || m.marksTo != "2024-04-06" {
		t.Errorf("loaded range = %s..%s, want 2024-02-25..2024-04-06", m.marksFrom, m.marksTo)
	}
	if m.loadMarksIfNeeded() != nil {
		t.Error("expected no reload inside the loaded range")
	}
}
