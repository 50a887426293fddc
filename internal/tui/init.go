package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/mark"
)

// InitState records which of the files almanac keeps on disk are missing
// at startup. When any is, the TUI opens the welcome modal.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState reports whether the config file and the marks database
// exist.
func DetectInitState(cfg *config.Config) (InitState, error) {
	st := InitState{
		ConfigPath: config.DefaultConfigPath(),
		DBPath:     cfg.Storage.DBPath,
	}

	var err error
	if st.ConfigMissing, err = missing(st.ConfigPath); err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	if st.DBMissing, err = missing(st.DBPath); err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}
	st.NeedsInit = st.ConfigMissing || st.DBMissing
	return st, nil
}

// NewStore mounts a calendar store configured from cfg. Extra options are
// applied after the configured ones.
func NewStore(cfg *config.Config, logger *slog.Logger, extra ...calstore.Option) (*calstore.Store, error) {
	opts := []calstore.Option{
		calstore.WithWeekStart(cfg.WeekStartDay()),
		calstore.WithInitialDate(cfg.Calendar.Date, cfg.Calendar.MinDate, cfg.Calendar.MaxDate),
		calstore.WithTrackWait(cfg.TrackDebounce()),
		calstore.WithLogger(logger),
	}
	return calstore.New(append(opts, extra...)...)
}

// missing treats an empty path as missing.
func missing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

func openRepo(dbPath string) (mark.Repository, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening marks database: %w", err)
	}
	return repo, nil
}

// initializeStorage writes the default config and opens the database,
// creating whichever the init state found missing.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
	}
	if m.repo != nil {
		return m, nil
	}

	repo, err := openRepo(m.initState.DBPath)
	if err != nil {
		return m, err
	}
	m.repo = repo
	return m, nil
}
