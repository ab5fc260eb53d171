package stats

import (
	"fmt"
	"time"
)

// Period span builders. All spans are inclusive on both ends and built in
// UTC, matching how createdAt timestamps are stored.

// YearSpan covers one calendar year.
func YearSpan(year int) Span {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Span{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
}

// QuarterSpan covers quarter q (1..4) of a year.
func QuarterSpan(year, q int) Span {
	start := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return Span{Start: start, End: start.AddDate(0, 3, 0).Add(-time.Nanosecond)}
}

// MonthSpan covers one calendar month.
func MonthSpan(year int, m time.Month) Span {
	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return Span{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// DaySpan covers the calendar day containing t.
func DaySpan(t time.Time) Span {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Span{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// MonthsOfQuarter returns the three calendar months of quarter q.
func MonthsOfQuarter(q int) [3]time.Month {
	first := time.Month((q-1)*3 + 1)
	return [3]time.Month{first, first + 1, first + 2}
}

// WeeksOfMonth returns the ISO weeks (Monday start) intersected with the
// month. The first and last week are clipped to the month boundary, so the
// union of the returned spans covers the month exactly once with no gaps
// and no double-counted day.
func WeeksOfMonth(year int, m time.Month) []Span {
	month := MonthSpan(year, m)
	weeks := make([]Span, 0, 6)
	cursor := StartOfWeek(month.Start)
	for !cursor.After(month.End) {
		week := Span{Start: cursor, End: cursor.AddDate(0, 0, 7).Add(-time.Nanosecond)}
		if week.Start.Before(month.Start) {
			week.Start = month.Start
		}
		if week.End.After(month.End) {
			week.End = month.End
		}
		weeks = append(weeks, week)
		cursor = cursor.AddDate(0, 0, 7)
	}
	return weeks
}

// DaysOfSpan returns one span per calendar day inside s. Week spans are
// day-aligned after month clipping, so the days are never partial.
func DaysOfSpan(s Span) []Span {
	days := make([]Span, 0, 7)
	cursor := time.Date(s.Start.Year(), s.Start.Month(), s.Start.Day(), 0, 0, 0, 0, s.Start.Location())
	for !cursor.After(s.End) {
		days = append(days, DaySpan(cursor))
		cursor = cursor.AddDate(0, 0, 1)
	}
	return days
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
}

// WeekLabel formats a week span for the period grid, e.g. "Mar 04 - Mar 10".
func WeekLabel(s Span) string {
	return fmt.Sprintf("%s - %s", s.Start.Format("Jan 02"), s.End.Format("Jan 02"))
}
