package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/mark"
)

func (a *App) markCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Manage marked days",
		Long: `Mark days with an optional note, remove marks, and list them.

Marks show as a dot on the calendar grid and in the agenda.`,
	}

	cmd.AddCommand(a.markAddCmd())
	cmd.AddCommand(a.markRmCmd())
	cmd.AddCommand(a.markListCmd())
	cmd.AddCommand(a.importCmd())
	return cmd
}

func (a *App) markAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> [note...]",
		Short: "Mark a day",
		Long: `Mark a day, replacing any existing note.

Days outside the configured range cannot be marked.`,
		Example: `  almanac mark add 2024-03-15 dentist at 10
  almanac mark add friday`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			date, err := a.parseDateArg(args[:1])
			if err != nil {
				return err
			}
			if err := a.checkInRange(date); err != nil {
				return err
			}

			m, err := mark.New(date, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.SetMark(context.Background(), m); err != nil {
				return fmt.Errorf("saving mark: %w", err)
			}

			if m.Note == "" {
				fmt.Fprintf(a.out, "Marked %s\n", m.DateString())
			} else {
				fmt.Fprintf(a.out, "Marked %s: %s\n", m.DateString(), m.Note)
			}
			return nil
		},
	}
}

func (a *App) markRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <date>",
		Aliases: []string{"remove"},
		Short:   "Remove the mark on a day",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			date, err := a.parseDateArg(args)
			if err != nil {
				return err
			}
			d, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteMark(context.Background(), d); err != nil {
				if errors.Is(err, mark.ErrMarkNotFound) {
					return fmt.Errorf("no mark on %s", date)
				}
				return fmt.Errorf("removing mark: %w", err)
			}

			fmt.Fprintf(a.out, "Unmarked %s\n", date)
			return nil
		},
	}
}

func (a *App) markListCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marked days in a date range",
		Long: `List marked days within a date range (inclusive).

Without flags the month of the configured date (or today) is listed.
If only --from is given, the range runs to the end of that month.`,
		Example: `  almanac mark list
  almanac mark list --from=2024-03-01 --to=2024-06-30`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			start, end, err := a.listRange(from, to)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			marks, err := a.repo.ListMarksByDateRange(context.Background(), start, end)
			if err != nil {
				return fmt.Errorf("listing marks: %w", err)
			}

			if len(marks) == 0 {
				fmt.Fprintf(a.out, "No marks between %s and %s.\n", dateutil.Format(start), dateutil.Format(end))
				return nil
			}
			fmt.Fprintln(a.out, renderMarkTable(marks, locale.Lookup(a.config.Calendar.Locale), termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (defaults to the first of the month)")
	cmd.Flags().StringVar(&to, "to", "", "End date (defaults to the end of the start month)")
	return cmd
}

// listRange resolves the --from/--to flags. Inverted ranges are rejected.
func (a *App) listRange(from, to string) (start, end time.Time, err error) {
	var args []string
	if from != "" {
		args = []string{from}
	}
	date, err := a.parseDateArg(args)
	if err != nil {
		return start, end, err
	}
	start, err = dateutil.ParseDate(date)
	if err != nil {
		return start, end, err
	}
	if from == "" {
		start = dateutil.StartOfMonth(start)
	}

	end = dateutil.EndOfMonth(start)
	if to != "" {
		t, err := dateutil.ParseLoose(to, a.now())
		if err != nil {
			return start, end, err
		}
		end = t
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: %s > %s", dateutil.ErrEndDateBeforeStart, dateutil.Format(start), dateutil.Format(end))
	}
	return start, end, nil
}

// checkInRange refuses dates outside the configured bounds.
func (a *App) checkInRange(date string) error {
	b, err := a.config.Bounds()
	if err != nil {
		return err
	}
	if !b.Contains(date) {
		return fmt.Errorf("%s is outside range %s..%s", date, orEllipsis(b.Min), orEllipsis(b.Max))
	}
	return nil
}

func orEllipsis(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

// renderMarkTable lays marks out as a bordered table no wider than width.
func renderMarkTable(marks []*mark.Mark, loc locale.Locale, width int) string {
	const fixedW = 30 // date, weekday, borders and padding
	noteW := max(width-fixedW, 10)

	rows := make([][]string, len(marks))
	for i, m := range marks {
		rows[i] = []string{
			m.DateString(),
			loc.WeekdayName(m.Date.Weekday()),
			runewidth.Truncate(m.Note, noteW, "…"),
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		Headers("DATE", "DAY", "NOTE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
