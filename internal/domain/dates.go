package domain

import "time"

// DateLayout is the calendar-day layout used everywhere: dates are
// day-granular, ISO formatted, and normalized to UTC midnight.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateString formats a time as an ISO YYYY-MM-DD string.
func DateString(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Day truncates a time to UTC midnight.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay returns the UTC midnight of the following calendar day.
func NextDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, 1)
}

// SameDay reports whether two times fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DatePtr returns a pointer to the UTC-midnight copy of t.
func DatePtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}

// CloneDate returns an independent copy of a nullable date.
func CloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}

// DateEqual compares two nullable dates by calendar day. Two nils are equal;
// a nil and a non-nil are not.
func DateEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return SameDay(*a, *b)
}
