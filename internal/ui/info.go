package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/locale"
)

func (a *App) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [date]",
		Short: "Describe a date",
		Long: `Print the derived calendar facts for a date: its week of the month,
the month's week count, whether it lies in the configured range, and
its mark.`,
		Example: `  almanac info
  almanac info "oct 7, 2024"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := a.stateFor(args)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			m, err := a.repo.GetMark(context.Background(), st.SelectedDate)
			if err != nil {
				return fmt.Errorf("getting mark: %w", err)
			}

			loc := locale.Lookup(a.config.Calendar.Locale)
			fmt.Fprintf(a.out, "%s  %s\n", formatHeader(st.SelectedDateString), loc.LongDate(st.SelectedDate))
			writeField(a.out, "week", fmt.Sprintf("%d of %d", st.SelectedWeekNumber, st.WeekCountInMonth))
			writeField(a.out, "month", fmt.Sprintf("%s, %d days", loc.MonthYear(st.SelectedDate), dateutil.DaysInMonth(st.SelectedDate)))

			rng := boundsText(st)
			if rng == "" {
				rng = "unbounded"
			}
			if st.IsDisabled(st.SelectedDateString) {
				rng = colorDisabled.Sprint("outside " + rng)
			}
			writeField(a.out, "range", rng)

			switch {
			case m == nil:
				writeField(a.out, "mark", formatMuted("none"))
			case m.Note == "":
				writeField(a.out, "mark", formatMark("•"))
			default:
				writeField(a.out, "mark", formatMark(m.Note))
			}
			return nil
		},
	}
}

func writeField(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %-6s %s\n", key, value)
}
