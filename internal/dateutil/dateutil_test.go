package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty is invalid", func(t *testing.T) {
		_, err := ParseDate("")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})

	t.Run("impossible day", func(t *testing.T) {
		_, err := ParseDate("2025-02-30")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseDateOr(t *testing.T) {
	fallback := time.Date(2024, 7, 4, 18, 45, 0, 0, time.Local)

	got, err := ParseDateOr("", fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ParseDateOr("2024-02-01", fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Format(got) != "2024-02-01" {
		t.Errorf("got %s, want 2024-02-01", Format(got))
	}
}

func TestMonthArithmetic(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{"leap february", "2024-02-15", "2024-02-01", "2024-02-29", 29},
		{"common february", "2023-02-01", "2023-02-01", "2023-02-28", 28},
		{"january", "2024-01-31", "2024-01-01", "2024-01-31", 31},
		{"april", "2024-04-30", "2024-04-01", "2024-04-30", 30},
		{"december", "2024-12-01", "2024-12-01", "2024-12-31", 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := Format(StartOfMonth(d)); got != tt.wantStart {
				t.Errorf("StartOfMonth = %s, want %s", got, tt.wantStart)
			}
			if got := Format(EndOfMonth(d)); got != tt.wantEnd {
				t.Errorf("EndOfMonth = %s, want %s", got, tt.wantEnd)
			}
			if got := DaysInMonth(d); got != tt.wantDays {
				t.Errorf("DaysInMonth = %d, want %d", got, tt.wantDays)
			}
		})
	}
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-03-31", -1, "2024-02-01"},
		{"2024-12-15", 1, "2025-01-01"},
		{"2024-01-15", -1, "2023-12-01"},
		{"2024-05-20", 0, "2024-05-01"},
		{"2024-05-20", 14, "2025-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, _ := ParseDate(tt.date)
			if got := Format(ShiftMonths(d, tt.n)); got != tt.want {
				t.Errorf("ShiftMonths(%s, %d) = %s, want %s", tt.date, tt.n, got, tt.want)
			}
		})
	}
}

func TestNewBounds(t *testing.T) {
	t.Run("valid bounds", func(t *testing.T) {
		b, err := NewBounds("2024-01-01", "2024-12-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Min != "2024-01-01" || b.Max != "2024-12-31" {
			t.Errorf("got %+v", b)
		}
	})

	t.Run("same min and max", func(t *testing.T) {
		if _, err := NewBounds("2024-06-01", "2024-06-01"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unbounded sides", func(t *testing.T) {
		b, err := NewBounds("", "2024-12-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.Contains("1900-01-01") {
			t.Error("expected open min side to contain any early date")
		}
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := NewBounds("2024-12-31", "2024-01-01")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("malformed side", func(t *testing.T) {
		_, err := NewBounds("2024-1-1", "")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: "2024-01-01", Max: "2024-12-31"}
	tests := []struct {
		date string
		want bool
	}{
		{"2023-12-31", false},
		{"2024-01-01", true},
		{"2024-06-15", true},
		{"2024-12-31", true},
		{"2025-01-01", false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.date); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
	if !(Bounds{}).Contains("0001-01-01") {
		t.Error("zero bounds should contain every date")
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      string
		relativeTo time.Time
		want       time.Time
	}{
		{"empty returns today", "", friday, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"today keyword", "today", friday, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"TODAY uppercase", "TODAY", friday, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", "tomorrow", friday, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "yesterday", friday, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"next-week", "next-week", friday, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"prev-week", "prev-week", friday, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"next-month", "next-month", friday, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"prev-month crosses year", "prev-month", friday, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"saturday from friday", "saturday", friday, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{"friday from friday returns next friday", "friday", friday, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"next-monday from friday", "next-monday", friday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"NEXT-MONDAY uppercase", "NEXT-MONDAY", friday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"absolute past date", "2020-02-29", friday, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"absolute future date", "2030-12-31", friday, time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"input with whitespace", "  monday  ", friday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, tt.relativeTo)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	for _, input := range []string{"01-10-2025", "mondya", "next-mondya", "next-", "foo"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeDate(input, friday)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
			}
		})
	}
}

func TestParseLoose(t *testing.T) {
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  string
	}{
		{"tomorrow", "2025-01-11"},
		{"2024-03-15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"oct 7, 1970", "1970-10-07"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLoose(tt.input, friday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Format(got) != tt.want {
				t.Errorf("got %s, want %s", Format(got), tt.want)
			}
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseLoose("not a date at all", friday)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestWeekdayByName(t *testing.T) {
	if wd, ok := WeekdayByName(" Monday "); !ok || wd != time.Monday {
		t.Errorf("got %v %v, want Monday true", wd, ok)
	}
	if _, ok := WeekdayByName("funday"); ok {
		t.Error("expected funday to be rejected")
	}
}
