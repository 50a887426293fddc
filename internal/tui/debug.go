package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calstate"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "almanac-debug.log"

var (
	debugLog  = slog.New(slog.DiscardHandler)
	debugFile *os.File
)

// InitDebugLogger opens the debug log when enabled and returns the logger
// shared by the TUI and the calendar store. When disabled the logger
// discards everything.
func InitDebugLogger(enabled bool) (*slog.Logger, error) {
	if !enabled {
		debugLog = slog.New(slog.DiscardHandler)
		return debugLog, nil
	}

	// Create log file in current directory with fixed name (easy to find)
	f, err := os.Create(DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}

	debugFile = f
	debugLog = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	debugLog.Info("debug_start", "log_file", DebugLogPath)
	return debugLog, nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile == nil {
		return
	}
	debugLog.Info("debug_end")
	_ = debugFile.Close()
	debugFile = nil
	debugLog = slog.New(slog.DiscardHandler)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug("key_press", "key", msg.String())
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.Debug("mode_change", "from", from.String(), "to", to.String(), "reason", reason)
}

// LogState logs the calendar snapshot the view is rendering.
func LogState(st calstate.State, reason string) {
	debugLog.Debug("state",
		"reason", reason,
		"selected", st.SelectedDateString,
		"week", st.SelectedWeekNumber,
		"weeks", st.WeekCountInMonth,
		"min", st.MinDate,
		"max", st.MaxDate,
	)
}

// LogTrackingCancelled logs an agenda scroll superseded by explicit navigation.
func LogTrackingCancelled(reason string) {
	debugLog.Debug("tracking_cancelled", "reason", reason)
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.Error("error", "context", context, "error", err)
}
