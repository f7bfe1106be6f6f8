package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DayFirstLayout is the DD/MM/YYYY format some roster exports use.
const DayFirstLayout = "02/01/2006"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDayFirst parses a DD/MM/YYYY date string.
func ParseDayFirst(value string) (time.Time, error) {
	return time.Parse(DayFirstLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CivilDate builds a UTC midnight time and reports whether the year/month/day
// combination exists on the calendar (time.Date would silently normalize it).
func CivilDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
