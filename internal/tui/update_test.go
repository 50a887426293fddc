package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/mark"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

func TestStateChangedFromAnotherWriter(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if err := m.store.Handler().SetDate("2024-05-01"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	select {
	case <-m.changes:
	default:
		t.Fatal("store change was not signalled")
	}

	m, cmd := send(t, m, commands.StateChangedMsg{})
	if got := m.state.SelectedDateString; got != "2024-05-01" {
		t.Errorf("selected = %s, want 2024-05-01", got)
	}
	if m.state.WeekCountInMonth != 5 {
		t.Errorf("week count = %d, want 5", m.state.WeekCountInMonth)
	}
	if cmd == nil {
		t.Error("expected commands to reload marks and wait for the next change")
	}
}

func TestAgendaScrollSelectsTopDayAfterQuiescence(t *testing.T) {
	cfg := config.Default()
	cfg.UI.View = config.ViewExpandable
	timers := &manualTimers{}
	m, _ := newTestModel(t, cfg, calstore.WithAfterFunc(timers.AfterFunc))

	if m.agendaOffset != 0 {
		t.Fatalf("initial offset = %d, want 0", m.agendaOffset)
	}
	m, _ = press(t, m, "J")
	m, _ = press(t, m, "J")
	m, _ = press(t, m, "J")
	if m.agendaOffset != 3 {
		t.Fatalf("offset = %d, want 3", m.agendaOffset)
	}
	if !m.tracker.Pending() {
		t.Fatal("expected a pending tracked date")
	}
	if got := m.store.MustSnapshot().SelectedDateString; got != "2024-03-15" {
		t.Fatalf("selection moved before quiescence: %s", got)
	}

	timers.FireAll()
	m, _ = send(t, m, commands.StateChangedMsg{})
	if got := m.state.SelectedDateString; got != "2024-03-04" {
		t.Errorf("selected = %s, want top day 2024-03-04", got)
	}
	if m.agendaOffset != 3 {
		t.Errorf("offset = %d, want 3 after selecting the top day", m.agendaOffset)
	}
}

func TestNavigationCancelsTrackedDate(t *testing.T) {
	cfg := config.Default()
	cfg.UI.View = config.ViewExpandable
	timers := &manualTimers{}
	m, _ := newTestModel(t, cfg, calstore.WithAfterFunc(timers.AfterFunc))

	m, _ = press(t, m, "J")
	if !m.tracker.Pending() {
		t.Fatal("expected a pending tracked date after scrolling")
	}
	m, _ = press(t, m, "l")
	if m.tracker.Pending() {
		t.Error("tracked date still pending after moving the cursor")
	}
	timers.FireAll()

	if got := m.store.MustSnapshot().SelectedDateString; got != "2024-03-16" {
		t.Errorf("selected = %s, want 2024-03-16", got)
	}
}

func TestMonthChangeCancelsTrackedDate(t *testing.T) {
	cfg := config.Default()
	cfg.UI.View = config.ViewExpandable
	timers := &manualTimers{}
	m, _ := newTestModel(t, cfg, calstore.WithAfterFunc(timers.AfterFunc))

	m, _ = press(t, m, "J")
	m, _ = press(t, m, "n")
	if m.tracker.Pending() {
		t.Error("tracked date still pending after changing month")
	}
	timers.FireAll()

	if got := m.store.MustSnapshot().SelectedDateString; got != "2024-04-30" {
		t.Errorf("selected = %s, want 2024-04-30", got)
	}
}

func TestAgendaScrollOutsideExpandableView(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, "J")
	if m.agendaOffset != 0 {
		t.Errorf("offset = %d, want 0", m.agendaOffset)
	}
	if !strings.Contains(m.statusMsg, "expandable") {
		t.Errorf("status = %q, want hint about the expandable view", m.statusMsg)
	}
}

func TestMarksLoadedIgnoresStaleRange(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, "n")

	stale, _ := mark.New("2024-03-15", "old")
	m, _ = send(t, m, commands.MarksLoadedMsg{
		Start: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC),
		Marks: []*mark.Mark{stale},
	})
	if m.marks.Has("2024-03-15") {
		t.Error("stale marks were applied")
	}
	if m.marksFrom != "" {
		t.Errorf("marksFrom = %q, want empty", m.marksFrom)
	}
}

func TestConfigReloaded(t *testing.T) {
	m, _ := newTestModel(t, nil)

	cfg := config.Default()
	cfg.UI.Theme = "latte"
	cfg.UI.View = config.ViewWeek
	cfg.Calendar.Locale = "es"

	m, _ = send(t, m, commands.ConfigReloadedMsg{Config: cfg})
	if m.theme.Name != "latte" {
		t.Errorf("theme = %s, want latte", m.theme.Name)
	}
	if m.locale.Tag.String() != "es" {
		t.Errorf("locale = %s, want es", m.locale.Tag)
	}
	if m.view != config.ViewWeek {
		t.Errorf("view = %s, want week", m.view)
	}
	if !strings.Contains(m.View(), "Marzo de 2024") {
		t.Error("header not localized after reload")
	}
}

func TestConfigReloadError(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, commands.ConfigReloadedMsg{Err: errors.New("bad toml")})
	if !strings.Contains(m.statusMsg, "bad toml") {
		t.Errorf("status = %q, want reload error", m.statusMsg)
	}
	if m.theme.Name != "frappe" {
		t.Errorf("theme changed to %s after a failed reload", m.theme.Name)
	}
}

func TestErrMsgShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := send(t, m, commands.ErrMsg{Err: errors.New("disk full")})
	if m.statusMsg != "Error: disk full" {
		t.Errorf("status = %q, want %q", m.statusMsg, "Error: disk full")
	}
	if cmd == nil {
		t.Error("expected a clear-status tick")
	}

	m.statusTime = time.Now().Add(-time.Second)
	m, _ = send(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Errorf("status = %q, want cleared", m.statusMsg)
	}
}
