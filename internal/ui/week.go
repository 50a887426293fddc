package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/calendar"
)

func (a *App) weekCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Print the week containing a date",
		Long: `Print the grid row of the week containing a date.

The week is the row of the month grid, so it may include days of the
neighboring months. With --list each day is printed on its own line
together with its mark note.`,
		Example: `  almanac week
  almanac week friday --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := a.stateFor(args)
			if err != nil {
				return err
			}
			week := st.SelectedWeek()
			g, err := a.newGridView(st, [][]calendar.Day{week})
			if err != nil {
				return err
			}

			header := fmt.Sprintf("%s · week %d of %d", g.locale.MonthYear(st.SelectedDate), st.SelectedWeekNumber, st.WeekCountInMonth)
			fmt.Fprintln(a.out, formatHeader(header))
			if list {
				writeDayList(a.out, g, week, termWidth())
			} else {
				writeGrid(a.out, g)
			}
			if b := boundsText(st); b != "" {
				fmt.Fprintln(a.out, formatMuted(b))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print one line per day with notes")
	return cmd
}
