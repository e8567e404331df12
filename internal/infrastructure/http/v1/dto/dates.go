package dto

import (
	"time"

	"pharmastock/internal/core/apperror"
)

const dateOnly = "2006-01-02"

// ParseDate accepts either a calendar date (2006-01-02) or RFC 3339.
// A bare date is taken as midnight UTC.
func ParseDate(value, field string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperror.NewInvalidInput("date must be YYYY-MM-DD or RFC 3339").
		WithDetail("field", field).
		WithDetail("value", value)
}

// ParseDateRange parses an inclusive reporting range. A bare end date
// expands to the end of that day (23:59:59), so "end=2026-08-30" covers
// the whole of August 30.
func ParseDateRange(startValue, endValue string) (time.Time, time.Time, error) {
	if startValue == "" || endValue == "" {
		return time.Time{}, time.Time{}, apperror.NewInvalidInput("start and end are required").
			WithDetail("start", startValue).
			WithDetail("end", endValue)
	}

	start, err := ParseDate(startValue, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := ParseDate(endValue, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if _, dErr := time.Parse(dateOnly, endValue); dErr == nil {
		end = end.Add(24*time.Hour - time.Second)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.NewInvalidInput("end of range precedes start").
			WithDetail("start", startValue).
			WithDetail("end", endValue)
	}

	return start, end, nil
}
