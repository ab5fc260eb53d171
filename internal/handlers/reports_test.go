package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourkita/tourkita-backend/internal/stats"
)

func TestNavigatorFromQueryDefaultsToYearly(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/drilldown", nil)
	nav, err := navigatorFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, stats.LevelYearly, nav.Level())
	assert.Equal(t, stats.CategoryAll, nav.Category())
}

func TestNavigatorFromQueryFullPath(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/admin/reports/drilldown?category=location&year=2024&quarter=1&month=3&week=1&day=2024-03-05", nil)
	nav, err := navigatorFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, stats.LevelRecordTable, nav.Level())
	assert.Equal(t, stats.CategoryLocation, nav.Category())
	assert.Equal(t, 2024, nav.Year())
	assert.Equal(t, 1, nav.Quarter())
	assert.Equal(t, time.March, nav.Month())
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), nav.Day())
}

func TestNavigatorFromQueryPartialPath(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/drilldown?year=2024&quarter=2", nil)
	nav, err := navigatorFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, stats.LevelMonthly, nav.Level())
}

func TestNavigatorFromQueryRejectsMonthOutsideQuarter(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/drilldown?year=2024&quarter=1&month=7", nil)
	_, err := navigatorFromQuery(r)
	assert.Error(t, err)
}

func TestNavigatorFromQueryRejectsBadWeekIndex(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/drilldown?year=2024&quarter=1&month=3&week=9", nil)
	_, err := navigatorFromQuery(r)
	assert.Error(t, err)
}

func TestNavigatorFromQueryRejectsDayOutsideWeek(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/admin/reports/drilldown?year=2024&quarter=1&month=3&week=0&day=2024-03-20", nil)
	_, err := navigatorFromQuery(r)
	assert.Error(t, err)
}

func TestNavigatorFromQueryRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/drilldown?year=banana", nil)
	_, err := navigatorFromQuery(r)
	assert.Error(t, err)
}

func TestSummarySpan(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/reports/summary", nil)
	span, label, err := summarySpan(r)
	require.NoError(t, err)
	assert.True(t, span.IsZero())
	assert.Equal(t, "All time", label)

	r = httptest.NewRequest("GET", "/api/admin/reports/summary?year=2024", nil)
	span, label, err = summarySpan(r)
	require.NoError(t, err)
	assert.Equal(t, "2024", label)
	assert.Equal(t, stats.YearSpan(2024), span)

	r = httptest.NewRequest("GET", "/api/admin/reports/summary?year=2024&month=3", nil)
	span, label, err = summarySpan(r)
	require.NoError(t, err)
	assert.Equal(t, "March 2024", label)
	assert.Equal(t, stats.MonthSpan(2024, time.March), span)

	r = httptest.NewRequest("GET", "/api/admin/reports/summary?year=2024&month=13", nil)
	_, _, err = summarySpan(r)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", extractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", extractBearerToken("bearer abc123"))
	assert.Equal(t, "", extractBearerToken(""))
	assert.Equal(t, "", extractBearerToken("abc123"))
	assert.Equal(t, "", extractBearerToken("Basic abc123"))
}
