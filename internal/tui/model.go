// Package tui provides the terminal user interface for almanac.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/mark"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModePrompt:
		return "Prompt"
	case ModeModal:
		return "Modal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalHelp
	ModalInit
)

// PromptKind identifies what the footer prompt is collecting.
type PromptKind int

const (
	PromptGoTo PromptKind = iota
	PromptNote
)

func (k PromptKind) label() string {
	if k == PromptNote {
		return "note"
	}
	return "go to"
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store   *calstore.Store
	handler calstore.Handler
	tracker *calstore.Tracker
	changes chan struct{}
	repo    mark.Repository
	config  *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	locale locale.Locale

	// Calendar
	state    calstate.State
	view     string
	expanded bool

	// Marks of the loaded grid range
	marks     mark.Set
	marksFrom string
	marksTo   string

	agendaOffset int

	mode       Mode
	modalType  ModalType
	promptKind PromptKind
	promptDate string // selected date when the prompt opened
	prompt     textinput.Model
	initState  InitState
	initError  string

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithClock replaces the source of "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model reading and writing store.
func New(store *calstore.Store, repo mark.Repository, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	state, err := store.Snapshot()
	if err != nil {
		return nil, err
	}

	changes := make(chan struct{}, 1)
	if _, err := store.Subscribe(func(calstate.State) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}); err != nil {
		return nil, err
	}

	tracker, err := store.NewTracker()
	if err != nil {
		return nil, err
	}

	m := &Model{
		store:   store,
		handler: store.Handler(),
		tracker: tracker,
		changes: changes,
		repo:    repo,
		config:  cfg,
		state:   state,
		view:    cfg.UI.View,
		marks:   mark.Set{},
		mode:    ModeNormal,
		prompt:  textinput.New(),
		now:     time.Now,
	}
	m.applyConfig(cfg)

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// applyConfig installs the theme, locale, and view settings of cfg.
func (m *Model) applyConfig(cfg *config.Config) {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	m.config = cfg
	m.theme = t
	m.styles = NewStyles(t)
	m.locale = locale.Lookup(cfg.Calendar.Locale)

	m.prompt.CharLimit = mark.MaxNoteLength
	m.prompt.TextStyle = m.styles.InputTextStyle
	m.prompt.PromptStyle = m.styles.InputTextStyle
	m.prompt.PlaceholderStyle = m.styles.InputPlaceholderStyle
	m.prompt.Cursor.Style = m.styles.InputCursorStyle
	m.prompt.Cursor.TextStyle = m.styles.InputTextStyle
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit {
		return commands.WaitForChange(m.changes)
	}
	return tea.Batch(m.loadMarksIfNeeded(), commands.WaitForChange(m.changes))
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo mark.Repository, cfg *config.Config, debug bool) error {
	logger, err := InitDebugLogger(debug)
	if err != nil {
		return err
	}
	defer CloseDebugLogger()

	store, err := NewStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = openRepo(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	model, err := New(store, repo, cfg, WithInitState(initState))
	if err != nil {
		return err
	}
	p := tea.NewProgram(*model, tea.WithAltScreen())

	stopWatch, err := config.Watch(config.DefaultConfigPath(), func(c *config.Config, err error) {
		p.Send(commands.ConfigReloadedMsg{Config: c, Err: err})
	})
	if err != nil {
		LogError("watching config", err)
	} else {
		defer func() { _ = stopWatch() }()
	}

	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}
