package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
)

func TestDetectInitState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(home, "data", "almanac.db")

	state, err := DetectInitState(cfg)
	if err != nil {
		t.Fatalf("DetectInitState: %v", err)
	}
	if !state.NeedsInit || !state.ConfigMissing || !state.DBMissing {
		t.Fatalf("state = %+v, want everything missing", state)
	}

	if err := cfg.SaveTo(state.ConfigPath); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(cfg.Storage.DBPath, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	state, err = DetectInitState(cfg)
	if err != nil {
		t.Fatalf("DetectInitState: %v", err)
	}
	if state.NeedsInit {
		t.Errorf("state = %+v, want nothing missing", state)
	}
}

func TestInitModalCreatesStorage(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "almanac.db")

	store, err := calstore.New(calstore.WithNow(testNow))
	if err != nil {
		t.Fatalf("calstore.New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	st := InitState{
		NeedsInit:     true,
		ConfigMissing: true,
		DBMissing:     true,
		ConfigPath:    filepath.Join(dir, "config.toml"),
		DBPath:        cfg.Storage.DBPath,
	}
	model, err := New(store, nil, cfg, WithInitState(st), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, _ := send(t, *model, tea.WindowSizeMsg{Width: 80, Height: 30})

	if m.mode != ModeModal || m.modalType != ModalInit {
		t.Fatalf("mode = %v/%v, want init modal", m.mode, m.modalType)
	}
	if !strings.Contains(m.View(), "Welcome") {
		t.Error("expected the welcome modal")
	}

	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want Normal", m.mode)
	}
	if cmd == nil {
		t.Error("expected commands after initialization")
	}
	if m.repo == nil {
		t.Fatal("expected an open repository")
	}
	t.Cleanup(func() { _ = m.repo.Close() })

	for _, path := range []string{st.ConfigPath, st.DBPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat %s: %v", path, err)
		}
	}
	if m.statusMsg != "Storage initialized" {
		t.Errorf("status = %q, want %q", m.statusMsg, "Storage initialized")
	}
}

func TestInitModalQuit(t *testing.T) {
	store, err := calstore.New(calstore.WithNow(testNow))
	if err != nil {
		t.Fatalf("calstore.New: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	model, err := New(store, nil, config.Default(), WithInitState(InitState{NeedsInit: true, DBMissing: true}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m, cmd := press(t, *model, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.mode != ModeModal {
		t.Errorf("mode = %v, want Modal", m.mode)
	}
}
