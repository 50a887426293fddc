// Package locale holds month and weekday names keyed by BCP 47 language tag.
package locale

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default is the locale used when nothing better matches.
const Default = "en"

// ErrInvalidLocale is returned for tags that do not parse.
var ErrInvalidLocale = errors.New("invalid locale")

// Names is one locale's name table. Weekday arrays are indexed by
// time.Weekday, so Sunday comes first.
type Names struct {
	Months        [12]string
	ShortMonths   [12]string
	Weekdays      [7]string
	ShortWeekdays [7]string
	// MonthYear is a fmt pattern for headers: %[1]s month name,
	// %[2]d year, %[3]d month number.
	MonthYear string
}

func (n Names) validate() error {
	for i, s := range n.Months {
		if s == "" || n.ShortMonths[i] == "" {
			return fmt.Errorf("missing name for month %d", i+1)
		}
	}
	for i, s := range n.Weekdays {
		if s == "" || n.ShortWeekdays[i] == "" {
			return fmt.Errorf("missing name for %s", time.Weekday(i))
		}
	}
	if n.MonthYear == "" {
		return errors.New("missing month-year pattern")
	}
	return nil
}

// Locale renders calendar labels in one language.
type Locale struct {
	Tag   language.Tag
	names Names
}

// MonthName returns the full month name, title-cased for the locale.
func (l Locale) MonthName(m time.Month) string {
	return cases.Title(l.Tag).String(l.names.Months[m-1])
}

// ShortMonth returns the abbreviated month name.
func (l Locale) ShortMonth(m time.Month) string {
	return l.names.ShortMonths[m-1]
}

// WeekdayName returns the full weekday name.
func (l Locale) WeekdayName(wd time.Weekday) string {
	return l.names.Weekdays[wd]
}

// ShortWeekday returns the grid header label for wd.
func (l Locale) ShortWeekday(wd time.Weekday) string {
	return l.names.ShortWeekdays[wd]
}

// WeekdayHeader returns the seven short labels starting at start.
func (l Locale) WeekdayHeader(start time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = l.names.ShortWeekdays[(int(start)+i)%7]
	}
	return out
}

// MonthYear formats the month header for t.
func (l Locale) MonthYear(t time.Time) string {
	return fmt.Sprintf(l.names.MonthYear, l.MonthName(t.Month()), t.Year(), int(t.Month()))
}

// LongDate formats t as a weekday plus the month header and day.
func (l Locale) LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %d", l.WeekdayName(t.Weekday()), l.MonthName(t.Month()), t.Day())
}

type registry struct {
	mu      sync.RWMutex
	tags    []language.Tag
	names   []Names
	matcher language.Matcher
}

var global = newRegistry()

func newRegistry() *registry {
	r := &registry{}
	for _, b := range builtin {
		if err := r.register(b.id, b.names); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *registry) register(id string, n Names) error {
	tag, err := Parse(id)
	if err != nil {
		return err
	}
	if err := n.validate(); err != nil {
		return fmt.Errorf("locale %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tags {
		if t == tag {
			r.names[i] = n
			return nil
		}
	}
	r.tags = append(r.tags, tag)
	r.names = append(r.names, n)
	r.matcher = language.NewMatcher(r.tags)
	return nil
}

func (r *registry) lookup(id string) Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, err := language.Parse(id)
	if err != nil {
		return Locale{Tag: r.tags[0], names: r.names[0]}
	}
	_, idx, conf := r.matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return Locale{Tag: r.tags[idx], names: r.names[idx]}
}

func (r *registry) available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.tags))
	for i, t := range r.tags {
		out[i] = t.String()
	}
	return out
}

// Parse validates a locale identifier.
func Parse(id string) (language.Tag, error) {
	tag, err := language.Parse(id)
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %v", ErrInvalidLocale, id, err)
	}
	return tag, nil
}

// Register adds a name table, replacing any table already registered under
// the same tag.
func Register(id string, n Names) error {
	return global.register(id, n)
}

// Lookup returns the best registered match for id, falling back to Default.
func Lookup(id string) Locale {
	return global.lookup(id)
}

// Available lists registered tags in registration order.
func Available() []string {
	return global.available()
}
