package tui

import (
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDebugLoggerWritesJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := InitDebugLogger(true)
	if err != nil {
		t.Fatalf("InitDebugLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger")
	}
	LogKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	LogModeChange(ModeNormal, ModePrompt, "go_to")
	LogError("test", errors.New("boom"))
	CloseDebugLogger()

	data, err := os.ReadFile(DebugLogPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"debug_start"`, `"msg":"key_press"`, `"key":"j"`, `"to":"Prompt"`, `"error":"boom"`, `"msg":"debug_end"`} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %s:\n%s", want, out)
		}
	}
}

func TestDebugLoggerDisabled(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := InitDebugLogger(false)
	if err != nil {
		t.Fatalf("InitDebugLogger: %v", err)
	}
	logger.Info("ignored")
	CloseDebugLogger()

	if _, err := os.Stat(DebugLogPath); !os.IsNotExist(err) {
		t.Errorf("stat err = %v, want not exist", err)
	}
}
