package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsLastDayOfMonth(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2026-01-31", true},
		{"2026-02-28", true},
		{"2028-02-28", false}, // leap year
		{"2028-02-29", true},
		{"2026-04-30", true},
		{"2026-04-29", false},
		{"2026-12-31", true},
		{"2026-12-01", false},
	}
	for _, tc := range cases {
		d, err := time.Parse(time.DateOnly, tc.date)
		require.NoError(t, err)
		require.Equal(t, tc.want, isLastDayOfMonth(d), "date %s", tc.date)
	}
}

func TestNextMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	now := time.Date(2026, 8, 30, 15, 42, 7, 0, loc)
	next := nextMidnight(now)
	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, loc), next)

	// Exactly at midnight schedules the following day, never an immediate refire.
	atMidnight := time.Date(2026, 8, 30, 0, 0, 0, 0, loc)
	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, loc), nextMidnight(atMidnight))

	// Month rollover.
	endOfMonth := time.Date(2026, 8, 31, 23, 59, 59, 0, loc)
	require.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, loc), nextMidnight(endOfMonth))
}
