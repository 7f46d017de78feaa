package repository

import (
	"database/sql"
	"time"

	"github.com/planscope/planscope/internal/domain"
)

// parseNullableDate parses a sql.NullString into a *time.Time at day
// granularity. Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return domain.DatePtr(t)
}

// nullableDateToValue converts a *time.Time to a value suitable for SQLite
// storage. Returns nil (SQL NULL) when the pointer is nil.
func nullableDateToValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.DateString(*t)
}

// dateStringPtr formats a nullable date as a nullable ISO string.
func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domain.DateString(*t)
	return &s
}

// parseDatePtr parses a nullable ISO string into a nullable date.
func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return domain.DatePtr(t)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
