package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourkita/tourkita-backend/internal/models"
)

func drillToDaily(t *testing.T) *Navigator {
	t.Helper()
	nav := NewNavigator(CategoryAll)
	require.NoError(t, nav.SelectYear(2024))
	require.NoError(t, nav.SelectQuarter(1))
	require.NoError(t, nav.SelectMonth(time.March))
	require.NoError(t, nav.SelectWeek(1)) // Mon Mar 4 - Sun Mar 10
	return nav
}

func TestNavigatorTransitions(t *testing.T) {
	nav := NewNavigator(CategoryAll)
	assert.Equal(t, LevelYearly, nav.Level())

	require.NoError(t, nav.SelectYear(2024))
	assert.Equal(t, LevelQuarterly, nav.Level())
	assert.Equal(t, 2024, nav.Year())

	require.NoError(t, nav.SelectQuarter(1))
	assert.Equal(t, LevelMonthly, nav.Level())

	require.NoError(t, nav.SelectMonth(time.February))
	assert.Equal(t, LevelWeekly, nav.Level())

	require.NoError(t, nav.SelectWeek(0))
	assert.Equal(t, LevelDaily, nav.Level())

	require.NoError(t, nav.SelectDay(nav.WeekRange().Start))
	assert.Equal(t, LevelRecordTable, nav.Level())
}

func TestNavigatorNoSkipping(t *testing.T) {
	nav := NewNavigator(CategoryAll)
	assert.Error(t, nav.SelectQuarter(1))
	assert.Error(t, nav.SelectMonth(time.March))
	assert.Error(t, nav.SelectWeek(0))
	assert.Error(t, nav.SelectDay(time.Now()))

	require.NoError(t, nav.SelectYear(2024))
	assert.Error(t, nav.SelectYear(2023)) // already past yearly
	assert.Error(t, nav.SelectMonth(time.March))
}

func TestNavigatorRejectsBadSelectors(t *testing.T) {
	nav := NewNavigator(CategoryAll)
	require.NoError(t, nav.SelectYear(2024))
	assert.Error(t, nav.SelectQuarter(0))
	assert.Error(t, nav.SelectQuarter(5))

	require.NoError(t, nav.SelectQuarter(2))
	assert.Error(t, nav.SelectMonth(time.January)) // Q2 is Apr-Jun

	require.NoError(t, nav.SelectMonth(time.May))
	assert.Error(t, nav.SelectWeek(-1))
	assert.Error(t, nav.SelectWeek(99))

	require.NoError(t, nav.SelectWeek(0))
	assert.Error(t, nav.SelectDay(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)))
}

func TestNavigatorBack(t *testing.T) {
	nav := drillToDaily(t)
	require.NoError(t, nav.SelectDay(nav.WeekRange().Start))
	assert.Equal(t, LevelRecordTable, nav.Level())

	nav.Back()
	assert.Equal(t, LevelDaily, nav.Level())
	assert.True(t, nav.Day().IsZero())

	nav.Back()
	assert.Equal(t, LevelWeekly, nav.Level())
	assert.True(t, nav.WeekRange().IsZero())

	nav.Back()
	nav.Back()
	nav.Back()
	assert.Equal(t, LevelYearly, nav.Level())

	// Back at the top is a no-op.
	nav.Back()
	nav.Back()
	assert.Equal(t, LevelYearly, nav.Level())
}

func TestCategoryChangePreservesDrillPosition(t *testing.T) {
	nav := drillToDaily(t)
	week := nav.WeekRange()
	require.NoError(t, nav.SelectDay(week.Start))
	day := nav.Day()

	nav.SetCategory(CategoryLocation)
	assert.Equal(t, LevelRecordTable, nav.Level())
	assert.Equal(t, week, nav.WeekRange())
	assert.Equal(t, day, nav.Day())
	assert.Equal(t, 2024, nav.Year())
	assert.Equal(t, 1, nav.Quarter())
	assert.Equal(t, time.March, nav.Month())
}

func TestYearlyBucketsIncludeCurrentYear(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	entries := []models.Feedback{
		locationEntry("Fort Santiago", intPtr(5), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
		locationEntry("Casa Manila", intPtr(4), time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)),
	}

	nav := NewNavigator(CategoryAll)
	buckets := nav.Buckets(entries, now)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2026", buckets[0].Label)
	assert.Equal(t, "2024", buckets[1].Label)
	assert.Equal(t, "2022", buckets[2].Label)

	// Current year has no records but still renders, as no-data.
	assert.Equal(t, 0, buckets[0].Count)
	assert.False(t, buckets[0].HasData)
	assert.Equal(t, NotApplicable, buckets[0].Top)
}

func TestQuarterlyGridShape(t *testing.T) {
	nav := NewNavigator(CategoryAll)
	require.NoError(t, nav.SelectYear(2024))

	buckets := nav.Buckets(nil, time.Now())
	require.Len(t, buckets, 4)
	assert.Equal(t, "Q1 2024", buckets[0].Label)
	assert.Equal(t, "Q4 2024", buckets[3].Label)
	for _, b := range buckets {
		assert.False(t, b.HasData)
		assert.Equal(t, NotApplicable, b.Top)
		assert.Equal(t, NotApplicable, b.Bottom)
	}
}

func TestBucketStatsRecomputeOnCategoryChange(t *testing.T) {
	march10 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.Feedback{
		locationEntry("Fort Santiago", intPtr(5), march10),
		featureEntry("AR Camera", intPtr(1), march10),
	}

	nav := NewNavigator(CategoryAll)
	require.NoError(t, nav.SelectYear(2024))
	buckets := nav.Buckets(entries, march10)
	assert.Equal(t, 2, buckets[0].Count) // Q1, both types

	nav.SetCategory(CategoryFeature)
	buckets = nav.Buckets(entries, march10)
	assert.Equal(t, LevelQuarterly, nav.Level())
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, "AR Camera", buckets[0].Top)
}

func TestRecordTableOrder(t *testing.T) {
	nav := drillToDaily(t)
	day := nav.WeekRange().Start.AddDate(0, 0, 2) // Wed Mar 6
	require.NoError(t, nav.SelectDay(day))

	morning := day.Add(8 * time.Hour)
	noon := day.Add(12 * time.Hour)
	evening := day.Add(20 * time.Hour)
	entries := []models.Feedback{
		locationEntry("morning", intPtr(3), morning),
		locationEntry("evening", intPtr(4), evening),
		locationEntry("noon", nil, noon),
		locationEntry("other day", intPtr(5), day.AddDate(0, 0, 1).Add(time.Hour)),
	}

	records := nav.Records(entries)
	require.Len(t, records, 3)
	assert.Equal(t, "evening", records[0].Location)
	assert.Equal(t, "noon", records[1].Location) // unrated records still listed
	assert.Equal(t, "morning", records[2].Location)
}
