package stats

import (
	"math"
	"sort"
	"time"

	"github.com/tourkita/tourkita-backend/internal/models"
)

// NotApplicable is rendered by the dashboard when no subject qualifies for
// a top/bottom slot.
const NotApplicable = "N/A"

// Category is the active feedback tab: location feedback, app-feature
// feedback, or everything.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryLocation Category = "location"
	CategoryFeature  Category = "feature"
)

// ParseCategory maps a query-string value onto a Category, defaulting to all.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryLocation:
		return CategoryLocation
	case CategoryFeature:
		return CategoryFeature
	default:
		return CategoryAll
	}
}

// ValidRating reports whether a record carries a usable rating. Zero, nil
// and out-of-range values are listed but never averaged.
func ValidRating(f models.Feedback) bool {
	return f.Rating != nil && *f.Rating >= 1 && *f.Rating <= 5
}

// Matches reports whether a record belongs to the category tab.
func Matches(f models.Feedback, c Category) bool {
	switch c {
	case CategoryLocation:
		return f.FeedbackType == models.LocationFeedback
	case CategoryFeature:
		return f.FeedbackType == models.AppFeedback
	default:
		return true
	}
}

// SubjectFor returns the rated entity name under the given tab. Under the
// all tab the subject falls back to whichever field is present.
func SubjectFor(f models.Feedback, c Category) string {
	switch c {
	case CategoryLocation:
		return f.Location
	case CategoryFeature:
		return f.Feature
	default:
		return f.Subject()
	}
}

// AverageRating returns the mean of valid ratings rounded to one decimal.
// ok is false when no entry qualifies; callers render that as "No data"
// instead of ever seeing a NaN from an empty division.
func AverageRating(entries []models.Feedback) (avg float64, ok bool) {
	sum, count := 0, 0
	for _, f := range entries {
		if ValidRating(f) {
			sum += *f.Rating
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return roundTenth(float64(sum) / float64(count)), true
}

// SubjectAverage is one row of the per-subject ranking.
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// PerSubjectAverages groups valid-rating entries by subject and returns the
// groups sorted descending by mean. The sort is stable over first-seen
// insertion order, so equal averages keep the order subjects first appeared
// in the input. Subjects whose every entry lacks a valid rating are absent
// rather than shown as an artificial 0.0.
func PerSubjectAverages(entries []models.Feedback, c Category) []SubjectAverage {
	type group struct {
		sum   int
		count int
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, f := range entries {
		if !ValidRating(f) || !Matches(f, c) {
			continue
		}
		subject := SubjectFor(f, c)
		if subject == "" {
			continue
		}
		g, seen := groups[subject]
		if !seen {
			g = &group{}
			groups[subject] = g
			order = append(order, subject)
		}
		g.sum += *f.Rating
		g.count++
	}

	ranked := make([]SubjectAverage, 0, len(order))
	for _, subject := range order {
		g := groups[subject]
		ranked = append(ranked, SubjectAverage{
			Subject: subject,
			Average: roundTenth(float64(g.sum) / float64(g.count)),
			Count:   g.count,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Average > ranked[j].Average
	})
	return ranked
}

// TopAndBottom returns the best and worst ranked subjects. Both are "N/A"
// when nothing qualifies; with a single subject, top and bottom coincide.
func TopAndBottom(entries []models.Feedback, c Category) (top, bottom string) {
	ranked := PerSubjectAverages(entries, c)
	if len(ranked) == 0 {
		return NotApplicable, NotApplicable
	}
	return ranked[0].Subject, ranked[len(ranked)-1].Subject
}

// Span is an inclusive time window: a year, quarter, month, week or day.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the span, boundaries included.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// IsZero reports whether the span is unset.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// EntriesInSpan returns the entries whose createdAt lies inside the span and
// whose type matches the category tab. Records without a timestamp are
// excluded from every spanned query.
func EntriesInSpan(entries []models.Feedback, span Span, c Category) []models.Feedback {
	out := make([]models.Feedback, 0)
	for _, f := range entries {
		if f.CreatedAt == nil {
			continue
		}
		if !Matches(f, c) {
			continue
		}
		if !span.Contains(*f.CreatedAt) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
