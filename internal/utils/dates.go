package utils

import "time"

// Date strings travel through the whole system as YYYY-MM-DD; months as YYYY-MM.
const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
)

// Today returns the clock's current date as a date string.
func Today(clock Clock) string {
	return clock.Now().Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// ParseMonth parses a YYYY-MM string to the first day of that month, local time.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(MonthFormat, s, time.Local)
}
