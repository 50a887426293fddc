package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

A running calendar picks up theme, locale and view changes
without a restart.

Example:
  almanac config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive(os.Stdin, a.out, config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Calendar.Date = promptDate(reader, out, "Start date (empty for today)", cfg.Calendar.Date)
	cfg.Calendar.MinDate = promptDate(reader, out, "Min date (empty for unbounded)", cfg.Calendar.MinDate)
	cfg.Calendar.MaxDate = promptDate(reader, out, "Max date (empty for unbounded)", cfg.Calendar.MaxDate)
	cfg.Calendar.WeekStart = promptWeekStart(reader, out, cfg.Calendar.WeekStart)
	cfg.Calendar.Locale = promptLocale(reader, out, cfg.Calendar.Locale)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptChoice(reader, out, "UI theme", cfg.UI.Theme, theme.Available())
	cfg.UI.View = promptChoice(reader, out, "View", cfg.UI.View, config.Views())

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[calendar]")
	fmt.Fprintf(out, "  date              = %s\n", orDefault(cfg.Calendar.Date, "today"))
	fmt.Fprintf(out, "  min_date          = %s\n", orDefault(cfg.Calendar.MinDate, "unbounded"))
	fmt.Fprintf(out, "  max_date          = %s\n", orDefault(cfg.Calendar.MaxDate, "unbounded"))
	fmt.Fprintf(out, "  week_start        = %s\n", cfg.Calendar.WeekStart)
	fmt.Fprintf(out, "  locale            = %s\n", cfg.Calendar.Locale)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme             = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  view              = %s\n", cfg.UI.View)
	fmt.Fprintf(out, "  hide_header       = %t\n", cfg.UI.HideHeader)
	fmt.Fprintf(out, "  track_debounce_ms = %d\n", cfg.UI.TrackDebounceMS)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// promptDate asks for a YYYY-MM-DD date. "-" clears the value.
func promptDate(reader *bufio.Reader, out io.Writer, label, current string) string {
	for {
		value := promptValue(reader, out, label, current)
		if value == "-" || value == "" {
			return ""
		}
		if _, err := dateutil.ParseDate(value); err == nil {
			return value
		}
		fmt.Fprintf(out, "  Invalid date %q. Use YYYY-MM-DD, or - to clear.\n", value)
		if atEOF(reader) {
			return current
		}
	}
}

func promptWeekStart(reader *bufio.Reader, out io.Writer, current string) string {
	for {
		value := strings.ToLower(promptValue(reader, out, "Week start (sunday, monday, ...)", current))
		if _, ok := dateutil.WeekdayByName(value); ok {
			return value
		}
		fmt.Fprintf(out, "  Invalid weekday %q.\n", value)
		if atEOF(reader) {
			return current
		}
	}
}

// promptLocale accepts any BCP 47 tag; unknown languages fall back to the
// closest built-in names at display time.
func promptLocale(reader *bufio.Reader, out io.Writer, current string) string {
	label := fmt.Sprintf("Locale (%s, ...)", strings.Join(locale.Available(), ", "))
	for {
		value := promptValue(reader, out, label, current)
		if _, err := locale.Parse(value); err == nil {
			return value
		}
		fmt.Fprintf(out, "  Invalid locale %q.\n", value)
		if atEOF(reader) {
			return current
		}
	}
}

func promptChoice(reader *bufio.Reader, out io.Writer, label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(promptValue(reader, out, full, current))
		if slices.Contains(options, value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid %s %q. Available: %s\n", strings.ToLower(label), value, joined)
		if atEOF(reader) {
			return current
		}
	}
}

// atEOF reports whether the reader has no more input, so prompts stop
// looping on a closed stdin.
func atEOF(reader *bufio.Reader) bool {
	_, err := reader.Peek(1)
	return err != nil
}
