// Package ui provides the almanac command line interface.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/calstore"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/mark"
	"github.com/javiermolinar/almanac/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     mark.Repository
	ownsRepo bool // repo was opened by ensureRepo
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	noColor  bool
	out      io.Writer
	now      func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened from the configured database on first use.
func NewApp(repo mark.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, out: os.Stdout, now: time.Now}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A terminal calendar",
		Long: `Almanac is a terminal calendar with month, week and agenda views.

Run without arguments to open the interactive calendar. Days can be
marked with a short note; marks are stored in a local sqlite database.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.infoCmd())
	a.root.AddCommand(a.markCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if !a.ownsRepo || a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	a.ownsRepo = false
	return err
}

// ensureRepo opens the configured database unless a repository is set.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// parseDateArg resolves an optional date argument to YYYY-MM-DD.
// No argument means the configured start date, or today.
func (a *App) parseDateArg(args []string) (string, error) {
	if len(args) == 0 {
		t, err := dateutil.ParseDateOr(a.config.Calendar.Date, a.now())
		if err != nil {
			return "", err
		}
		return dateutil.Format(t), nil
	}
	t, err := dateutil.ParseLoose(args[0], a.now())
	if err != nil {
		return "", err
	}
	return dateutil.Format(t), nil
}

// stateFor mounts a store from the config, selects the date argument, and
// returns the resulting snapshot.
func (a *App) stateFor(args []string) (calstate.State, error) {
	date, err := a.parseDateArg(args)
	if err != nil {
		return calstate.State{}, err
	}

	store, err := tui.NewStore(a.config, nil, calstore.WithNow(a.now()))
	if err != nil {
		return calstate.State{}, err
	}
	defer func() { _ = store.Close() }()

	if err := store.Handler().SetDate(date); err != nil {
		return calstate.State{}, err
	}
	return store.Snapshot()
}
