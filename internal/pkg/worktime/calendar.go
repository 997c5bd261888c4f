package worktime

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// WeeksPerYear bounds roster navigation.
	WeeksPerYear = 52
)

// ParseDate parses a "YYYY-MM-DD" date key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
	}
	return t, nil
}

// FormatDate renders t as a "YYYY-MM-DD" date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a "YYYY-MM" month key into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidMonth)
	}
	return t, nil
}

// MonthDay is one calendar day of a month grid.
type MonthDay struct {
	Date       string
	Label      string
	Weekday    time.Weekday
	IsSaturday bool
}

// MonthDates lists every day of month except Sundays, labelled "MM-DD (Mon)".
func MonthDates(month time.Time) []MonthDay {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]MonthDay, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, MonthDay{
			Date:       FormatDate(d),
			Label:      fmt.Sprintf("%s (%s)", d.Format("01-02"), d.Format("Mon")),
			Weekday:    d.Weekday(),
			IsSaturday: d.Weekday() == time.Saturday,
		})
	}
	return days
}

// CurrentWeek returns the roster week number of t, counting from the week
// holding January 1st.
func CurrentWeek(t time.Time) int {
	firstDay := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	pastDays := int(day.Sub(firstDay).Hours() / 24)
	return (pastDays+int(firstDay.Weekday()))/7 + 1
}

// WeekDates returns the roster week's working dates: six days starting on
// the Monday of the given week, Sunday excluded.
func WeekDates(year, week int) ([]time.Time, error) {
	if week < 1 || week > WeeksPerYear+1 {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	firstDay := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (week-1)*7 - int(firstDay.Weekday()) + 1
	start := firstDay.AddDate(0, 0, offset)

	dates := make([]time.Time, 0, 6)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// PreviousWeek steps back one roster week, wrapping to week 52 of the prior year.
func PreviousWeek(year, week int) (int, int) {
	if week <= 1 {
		return year - 1, WeeksPerYear
	}
	return year, week - 1
}

// NextWeek steps forward one roster week, wrapping to week 1 of the next year.
func NextWeek(year, week int) (int, int) {
	if week >= WeeksPerYear {
		return year + 1, 1
	}
	return year, week + 1
}
