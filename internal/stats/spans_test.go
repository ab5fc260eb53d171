package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeksOfMonthCoverage(t *testing.T) {
	// Every month of a leap year and a common year: the clipped weeks must
	// cover the month exactly once, with no gaps and no overlapping day.
	for _, year := range []int{2023, 2024} {
		for m := time.January; m <= time.December; m++ {
			weeks := WeeksOfMonth(year, m)
			require.NotEmpty(t, weeks)

			month := MonthSpan(year, m)
			assert.Equal(t, month.Start, weeks[0].Start, "%s %d first week not clipped to month start", m, year)
			assert.Equal(t, month.End, weeks[len(weeks)-1].End, "%s %d last week not clipped to month end", m, year)

			for i := 1; i < len(weeks); i++ {
				gap := weeks[i].Start.Sub(weeks[i-1].End)
				assert.Equal(t, time.Duration(time.Nanosecond), gap,
					"%s %d: week %d does not start right after week %d", m, year, i, i-1)
			}
		}
	}
}

func TestWeeksOfMonthMondayStart(t *testing.T) {
	// March 2024: the 1st is a Friday, so week 2 must begin Monday the 4th.
	weeks := WeeksOfMonth(2024, time.March)
	require.GreaterOrEqual(t, len(weeks), 2)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), weeks[0].Start)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), weeks[1].Start)
	assert.Equal(t, time.Monday, weeks[1].Start.Weekday())
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},  // Sunday
		{time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},     // Monday
		{time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},     // Wednesday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StartOfWeek(tt.in))
	}
}

func TestQuarterSpan(t *testing.T) {
	q4 := QuarterSpan(2024, 4)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), q4.Start)
	assert.True(t, q4.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, q4.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysOfSpan(t *testing.T) {
	// First clipped week of March 2024: Fri 1 through Sun 3.
	weeks := WeeksOfMonth(2024, time.March)
	days := DaysOfSpan(weeks[0])
	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), days[0].Start)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), days[2].Start)
}

func TestMonthsOfQuarter(t *testing.T) {
	assert.Equal(t, [3]time.Month{time.April, time.May, time.June}, MonthsOfQuarter(2))
}
