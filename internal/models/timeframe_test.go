package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRangeValid(t *testing.T) {
	for _, r := range AllTimeRanges() {
		assert.True(t, r.Valid(), "range %s should be valid", r)
	}
	assert.False(t, TimeRange("7m").Valid())
	assert.False(t, TimeRange("").Valid())
	assert.False(t, TimeRange("1D").Valid())
}

func TestAllTimeRangesShortestFirst(t *testing.T) {
	ranges := AllTimeRanges()
	require.Len(t, ranges, 15)
	assert.Equal(t, Range15Min, ranges[0])
	assert.Equal(t, Range5Year, ranges[len(ranges)-1])
}

func TestLookbackFrom(t *testing.T) {
	end := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		rng  TimeRange
		want time.Time
	}{
		{Range15Min, end.Add(-15 * time.Minute)},
		{Range4Hour, end.Add(-4 * time.Hour)},
		{Range5Day, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)},
		{Range1Week, time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)},
		// calendar month arithmetic, not 30 days
		{Range1Month, time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC)},
		{Range1Year, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := tt.rng.LookbackFrom(end)
		require.NoError(t, err, "range %s", tt.rng)
		assert.Equal(t, tt.want, got, "range %s", tt.rng)
	}
}

func TestLookbackFromUnknownRange(t *testing.T) {
	_, err := TimeRange("bogus").LookbackFrom(time.Now())
	assert.Error(t, err)
}
