package stats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tourkita/tourkita-backend/internal/models"
)

// Level is the drill-down depth of the analysis report. Each level is
// reachable only from its predecessor; there is no skipping.
type Level int

const (
	LevelYearly Level = iota
	LevelQuarterly
	LevelMonthly
	LevelWeekly
	LevelDaily
	LevelRecordTable
)

func (l Level) String() string {
	switch l {
	case LevelYearly:
		return "yearly"
	case LevelQuarterly:
		return "quarterly"
	case LevelMonthly:
		return "monthly"
	case LevelWeekly:
		return "weekly"
	case LevelDaily:
		return "daily"
	case LevelRecordTable:
		return "records"
	}
	return "unknown"
}

// Bucket is one cell of the period grid. Empty buckets keep their place in
// the grid with HasData=false so the layout stays consistent.
type Bucket struct {
	Label         string  `json:"label"`
	Span          Span    `json:"span"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
	HasData       bool    `json:"has_data"`
	Top           string  `json:"top"`
	Bottom        string  `json:"bottom"`
}

// Navigator tracks the admin's position in the period hierarchy. Selecting
// a period at one level narrows to the next; Back climbs exactly one level.
// Changing the category tab mid-drill never moves the position: buckets are
// simply recomputed against the new tab.
type Navigator struct {
	level    Level
	category Category

	year    int
	quarter int
	month   time.Month
	week    Span
	day     time.Time
}

// NewNavigator starts at the yearly overview.
func NewNavigator(c Category) *Navigator {
	return &Navigator{level: LevelYearly, category: c}
}

func (n *Navigator) Level() Level       { return n.level }
func (n *Navigator) Category() Category { return n.category }

// Selected period accessors; zero values mean "not selected yet".
func (n *Navigator) Year() int           { return n.year }
func (n *Navigator) Quarter() int        { return n.quarter }
func (n *Navigator) Month() time.Month   { return n.month }
func (n *Navigator) WeekRange() Span     { return n.week }
func (n *Navigator) Day() time.Time      { return n.day }

// SetCategory switches the active tab in place, preserving the level and
// every selector.
func (n *Navigator) SetCategory(c Category) {
	n.category = c
}

// SelectYear narrows the yearly overview to one year's quarters.
func (n *Navigator) SelectYear(year int) error {
	if n.level != LevelYearly {
		return fmt.Errorf("select year: not at yearly level (at %s)", n.level)
	}
	n.year = year
	n.level = LevelQuarterly
	return nil
}

// SelectQuarter narrows a year to one quarter's months.
func (n *Navigator) SelectQuarter(q int) error {
	if n.level != LevelQuarterly {
		return fmt.Errorf("select quarter: not at quarterly level (at %s)", n.level)
	}
	if q < 1 || q > 4 {
		return fmt.Errorf("select quarter: invalid quarter %d", q)
	}
	n.quarter = q
	n.level = LevelMonthly
	return nil
}

// SelectMonth narrows a quarter to one month's weeks. The month must belong
// to the selected quarter.
func (n *Navigator) SelectMonth(m time.Month) error {
	if n.level != LevelMonthly {
		return fmt.Errorf("select month: not at monthly level (at %s)", n.level)
	}
	months := MonthsOfQuarter(n.quarter)
	if m != months[0] && m != months[1] && m != months[2] {
		return fmt.Errorf("select month: %s is not in Q%d", m, n.quarter)
	}
	n.month = m
	n.level = LevelWeekly
	return nil
}

// SelectWeek narrows a month to one week's days, by index into the month's
// clipped week list.
func (n *Navigator) SelectWeek(index int) error {
	if n.level != LevelWeekly {
		return fmt.Errorf("select week: not at weekly level (at %s)", n.level)
	}
	weeks := WeeksOfMonth(n.year, n.month)
	if index < 0 || index >= len(weeks) {
		return fmt.Errorf("select week: index %d out of range (month has %d weeks)", index, len(weeks))
	}
	n.week = weeks[index]
	n.level = LevelDaily
	return nil
}

// SelectDay narrows a week to a single day's record table. The day must lie
// within the selected week range.
func (n *Navigator) SelectDay(day time.Time) error {
	if n.level != LevelDaily {
		return fmt.Errorf("select day: not at daily level (at %s)", n.level)
	}
	start := DaySpan(day).Start
	if !n.week.Contains(start) {
		return fmt.Errorf("select day: %s outside selected week", start.Format("2006-01-02"))
	}
	n.day = start
	n.level = LevelRecordTable
	return nil
}

// Back climbs one level, clearing the selector of the level being left.
// At the yearly overview it is a no-op, so repeated Back is idempotent.
func (n *Navigator) Back() {
	switch n.level {
	case LevelQuarterly:
		n.year = 0
		n.level = LevelYearly
	case LevelMonthly:
		n.quarter = 0
		n.level = LevelQuarterly
	case LevelWeekly:
		n.month = 0
		n.level = LevelMonthly
	case LevelDaily:
		n.week = Span{}
		n.level = LevelWeekly
	case LevelRecordTable:
		n.day = time.Time{}
		n.level = LevelDaily
	}
}

// Buckets computes the period grid for the current level from the full
// in-memory feedback set. At the record-table level it returns nil; use
// Records instead.
func (n *Navigator) Buckets(entries []models.Feedback, now time.Time) []Bucket {
	switch n.level {
	case LevelYearly:
		return n.yearlyBuckets(entries, now)
	case LevelQuarterly:
		buckets := make([]Bucket, 0, 4)
		for q := 1; q <= 4; q++ {
			label := fmt.Sprintf("Q%d %d", q, n.year)
			buckets = append(buckets, n.bucketFor(label, QuarterSpan(n.year, q), entries))
		}
		return buckets
	case LevelMonthly:
		months := MonthsOfQuarter(n.quarter)
		buckets := make([]Bucket, 0, 3)
		for _, m := range months {
			label := fmt.Sprintf("%s %d", m, n.year)
			buckets = append(buckets, n.bucketFor(label, MonthSpan(n.year, m), entries))
		}
		return buckets
	case LevelWeekly:
		weeks := WeeksOfMonth(n.year, n.month)
		buckets := make([]Bucket, 0, len(weeks))
		for _, w := range weeks {
			buckets = append(buckets, n.bucketFor(WeekLabel(w), w, entries))
		}
		return buckets
	case LevelDaily:
		days := DaysOfSpan(n.week)
		buckets := make([]Bucket, 0, len(days))
		for _, d := range days {
			buckets = append(buckets, n.bucketFor(d.Start.Format("Jan 02, 2006"), d, entries))
		}
		return buckets
	}
	return nil
}

// yearlyBuckets lists every year present in the data plus the current year,
// newest first, so navigation is available even before any feedback exists.
func (n *Navigator) yearlyBuckets(entries []models.Feedback, now time.Time) []Bucket {
	seen := map[int]bool{now.UTC().Year(): true}
	for _, f := range entries {
		if f.CreatedAt != nil {
			seen[f.CreatedAt.UTC().Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	buckets := make([]Bucket, 0, len(years))
	for _, y := range years {
		buckets = append(buckets, n.bucketFor(strconv.Itoa(y), YearSpan(y), entries))
	}
	return buckets
}

func (n *Navigator) bucketFor(label string, span Span, entries []models.Feedback) Bucket {
	in := EntriesInSpan(entries, span, n.category)
	avg, ok := AverageRating(in)
	top, bottom := TopAndBottom(in, n.category)
	return Bucket{
		Label:         label,
		Span:          span,
		Count:         len(in),
		AverageRating: avg,
		HasData:       ok,
		Top:           top,
		Bottom:        bottom,
	}
}

// Records returns the selected day's entries for the record table, newest
// first to match the fetch order of the feedback listing.
func (n *Navigator) Records(entries []models.Feedback) []models.Feedback {
	if n.level != LevelRecordTable {
		return nil
	}
	in := EntriesInSpan(entries, DaySpan(n.day), n.category)
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].CreatedAt.After(*in[j].CreatedAt)
	})
	return in
}
