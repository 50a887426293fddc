// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/mark"
)

// ErrNoStorage is returned when a mark command runs before storage exists.
var ErrNoStorage = errors.New("storage not initialized")

// StateChangedMsg is sent when the calendar store published a new state.
type StateChangedMsg struct{}

// MarksLoadedMsg is sent when the marks of a date range are loaded.
type MarksLoadedMsg struct {
	Start time.Time
	End   time.Time
	Marks []*mark.Mark
}

// MarkSavedMsg is sent when a mark was stored.
type MarkSavedMsg struct {
	Mark *mark.Mark
}

// MarkDeletedMsg is sent when the mark on Date was removed.
type MarkDeletedMsg struct {
	Date string
}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WaitForChange blocks until the store signals a change on ch.
func WaitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StateChangedMsg{}
	}
}

// LoadMarks loads the marks between start and end (inclusive).
func LoadMarks(repo mark.Repository, start, end time.Time) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		marks, err := repo.ListMarksByDateRange(context.Background(), start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading marks: %w", err)}
		}
		return MarksLoadedMsg{Start: start, End: end, Marks: marks}
	}
}

// SaveMark marks date with note, replacing an existing note.
func SaveMark(repo mark.Repository, date, note string) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: ErrNoStorage}
		}
		m, err := mark.New(date, note)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.SetMark(context.Background(), m); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving mark: %w", err)}
		}
		return MarkSavedMsg{Mark: m}
	}
}

// DeleteMark removes the mark on date.
func DeleteMark(repo mark.Repository, date string) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: ErrNoStorage}
		}
		d, err := dateutil.ParseDate(date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.DeleteMark(context.Background(), d); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting mark: %w", err)}
		}
		return MarkDeletedMsg{Date: date}
	}
}
