package util

import (
	"database/sql"
	"strings"
	"time"
)

// NullableText maps optional profile text to a nullable column. Blank values
// are stored as NULL so unique constraints ignore them.
func NullableText(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullableDate stores a calendar date at UTC midnight. A nil or zero date is NULL.
func NullableDate(d *time.Time) sql.NullTime {
	if d == nil || d.IsZero() {
		return sql.NullTime{}
	}
	y, m, day := d.Date()
	return sql.NullTime{Time: time.Date(y, m, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// DateFromNull is the inverse of NullableDate.
func DateFromNull(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	y, m, day := n.Time.Date()
	d := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &d
}
