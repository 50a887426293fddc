package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/calstate"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/mark"
)

func (a *App) monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [date]",
		Short: "Print the month grid around a date",
		Long: `Print the month containing a date, with the date selected.

The date may be YYYY-MM-DD, a keyword (today, tomorrow, yesterday,
next-week, prev-week, next-month, prev-month, a weekday name) or a
loose format such as "oct 7, 2024". It defaults to today.`,
		Example: `  almanac month
  almanac month 2024-03-15
  almanac month next-month`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := a.stateFor(args)
			if err != nil {
				return err
			}
			g, err := a.newGridView(st, st.MonthWeeks())
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, formatHeader(centerText(g.locale.MonthYear(st.SelectedDate), gridWidth)))
			writeGrid(a.out, g)
			a.writeFooter(st)
			return nil
		},
	}
}

// newGridView loads the marks covering weeks and bundles the grid inputs.
func (a *App) newGridView(st calstate.State, weeks [][]calendar.Day) (gridView, error) {
	marks, err := a.loadMarks(weeks)
	if err != nil {
		return gridView{}, err
	}
	return gridView{
		state:  st,
		weeks:  weeks,
		marks:  marks,
		locale: locale.Lookup(a.config.Calendar.Locale),
		today:  dateutil.Format(a.now()),
	}, nil
}

// loadMarks fetches the marks between the first and last day of weeks.
func (a *App) loadMarks(weeks [][]calendar.Day) (mark.Set, error) {
	if len(weeks) == 0 {
		return mark.Set{}, nil
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	last := weeks[len(weeks)-1]
	marks, err := a.repo.ListMarksByDateRange(context.Background(), weeks[0][0].Time(), last[len(last)-1].Time())
	if err != nil {
		return nil, fmt.Errorf("listing marks: %w", err)
	}
	return mark.Index(marks), nil
}

// writeFooter prints the week position and the range, if any.
func (a *App) writeFooter(st calstate.State) {
	line := fmt.Sprintf("week %d of %d", st.SelectedWeekNumber, st.WeekCountInMonth)
	if b := boundsText(st); b != "" {
		line += " · " + b
	}
	fmt.Fprintln(a.out, formatMuted(line))
}
