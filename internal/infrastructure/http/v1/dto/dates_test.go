package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastock/internal/core/apperror"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-30", "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-08-30T14:45:30Z", "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 14, 45, 30, 0, time.UTC), got)

	// Offsets normalize to UTC.
	got, err = ParseDate("2026-08-30T10:00:00+02:00", "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Malformed(t *testing.T) {
	for _, value := range []string{"", "30.08.2026", "2026-13-01", "yesterday"} {
		_, err := ParseDate(value, "from")
		require.Error(t, err, "value %q", value)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Equal(t, "from", appErr.Details["field"])
	}
}

func TestParseDateRange_BareEndDateCoversWholeDay(t *testing.T) {
	from, to, err := ParseDateRange("2026-08-01", "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC), to)
}

func TestParseDateRange_ExplicitTimestampNotExpanded(t *testing.T) {
	_, to, err := ParseDateRange("2026-08-01", "2026-08-30T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), to)
}

func TestParseDateRange_SameDay(t *testing.T) {
	from, to, err := ParseDateRange("2026-08-30", "2026-08-30")
	require.NoError(t, err)
	assert.True(t, from.Before(to))
}

func TestParseDateRange_Reversed(t *testing.T) {
	_, _, err := ParseDateRange("2026-08-30", "2026-08-01")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestParseDateRange_MissingBound(t *testing.T) {
	_, _, err := ParseDateRange("", "2026-08-30")
	require.Error(t, err)

	_, _, err = ParseDateRange("2026-08-01", "")
	require.Error(t, err)
}
