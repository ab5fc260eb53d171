package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourkita/tourkita-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func locationEntry(subject string, rating *int, at time.Time) models.Feedback {
	return models.Feedback{
		FeedbackType: models.LocationFeedback,
		Location:     subject,
		Rating:       rating,
		CreatedAt:    timePtr(at),
	}
}

func featureEntry(subject string, rating *int, at time.Time) models.Feedback {
	return models.Feedback{
		FeedbackType: models.AppFeedback,
		Feature:      subject,
		Rating:       rating,
		CreatedAt:    timePtr(at),
	}
}

func TestAverageRating(t *testing.T) {
	march10 := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entries []models.Feedback
		want    float64
		wantOK  bool
	}{
		{
			name:    "empty input is no data, not NaN",
			entries: nil,
			wantOK:  false,
		},
		{
			name: "entries without numeric rating are no data",
			entries: []models.Feedback{
				locationEntry("Fort Santiago", nil, march10),
				locationEntry("Fort Santiago", intPtr(0), march10),
			},
			wantOK: false,
		},
		{
			name: "mean rounded to one decimal",
			entries: []models.Feedback{
				locationEntry("Fort Santiago", intPtr(5), march10),
				locationEntry("Fort Santiago", intPtr(3), march10),
				locationEntry("Casa Manila", intPtr(4), march10),
			},
			want:   4.0,
			wantOK: true,
		},
		{
			name: "rounding to nearest tenth",
			entries: []models.Feedback{
				locationEntry("A", intPtr(5), march10),
				locationEntry("A", intPtr(4), march10),
				locationEntry("A", intPtr(4), march10),
			},
			want:   4.3,
			wantOK: true,
		},
		{
			name: "out of range ratings excluded",
			entries: []models.Feedback{
				locationEntry("A", intPtr(9), march10),
				locationEntry("A", intPtr(3), march10),
			},
			want:   3.0,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AverageRating(tt.entries)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAverageRatingOrderInvariant(t *testing.T) {
	march10 := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.Feedback{
		locationEntry("A", intPtr(1), march10),
		locationEntry("B", intPtr(4), march10),
		locationEntry("C", intPtr(5), march10),
		locationEntry("D", nil, march10),
	}
	forward, okF := AverageRating(entries)

	reversed := make([]models.Feedback, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	backward, okB := AverageRating(reversed)

	assert.True(t, okF)
	assert.True(t, okB)
	assert.Equal(t, forward, backward)
}

func TestPerSubjectAverages(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC) }

	t.Run("tie broken by first-seen order", func(t *testing.T) {
		entries := []models.Feedback{
			locationEntry("Fort Santiago", intPtr(5), day(10)),
			locationEntry("Fort Santiago", intPtr(3), day(12)),
			locationEntry("Casa Manila", intPtr(4), day(15)),
		}
		ranked := PerSubjectAverages(entries, CategoryLocation)
		require.Len(t, ranked, 2)
		assert.Equal(t, SubjectAverage{Subject: "Fort Santiago", Average: 4.0, Count: 2}, ranked[0])
		assert.Equal(t, SubjectAverage{Subject: "Casa Manila", Average: 4.0, Count: 1}, ranked[1])
	})

	t.Run("sorted descending by average", func(t *testing.T) {
		entries := []models.Feedback{
			locationEntry("Baluarte", intPtr(2), day(1)),
			locationEntry("Manila Cathedral", intPtr(5), day(2)),
			locationEntry("San Agustin", intPtr(4), day(3)),
		}
		ranked := PerSubjectAverages(entries, CategoryLocation)
		require.Len(t, ranked, 3)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Average, ranked[i].Average)
		}
		assert.Equal(t, "Manila Cathedral", ranked[0].Subject)
		assert.Equal(t, "Baluarte", ranked[2].Subject)
	})

	t.Run("subjects with only invalid ratings are absent", func(t *testing.T) {
		entries := []models.Feedback{
			locationEntry("Fort Santiago", intPtr(4), day(1)),
			locationEntry("Plaza Moriones", nil, day(2)),
			locationEntry("Plaza Moriones", intPtr(0), day(3)),
		}
		ranked := PerSubjectAverages(entries, CategoryLocation)
		require.Len(t, ranked, 1)
		assert.Equal(t, "Fort Santiago", ranked[0].Subject)
	})

	t.Run("category tab selects the subject field", func(t *testing.T) {
		entries := []models.Feedback{
			locationEntry("Fort Santiago", intPtr(5), day(1)),
			featureEntry("AR Camera", intPtr(2), day(2)),
		}
		assert.Len(t, PerSubjectAverages(entries, CategoryLocation), 1)
		assert.Len(t, PerSubjectAverages(entries, CategoryFeature), 1)
		all := PerSubjectAverages(entries, CategoryAll)
		require.Len(t, all, 2)
		assert.Equal(t, "Fort Santiago", all[0].Subject)
		assert.Equal(t, "AR Camera", all[1].Subject)
	})
}

func TestTopAndBottom(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("empty is N/A both ways", func(t *testing.T) {
		top, bottom := TopAndBottom(nil, CategoryAll)
		assert.Equal(t, NotApplicable, top)
		assert.Equal(t, NotApplicable, bottom)
	})

	t.Run("single subject is both top and bottom", func(t *testing.T) {
		entries := []models.Feedback{locationEntry("Fort Santiago", intPtr(3), day)}
		top, bottom := TopAndBottom(entries, CategoryLocation)
		assert.Equal(t, "Fort Santiago", top)
		assert.Equal(t, "Fort Santiago", bottom)
	})

	t.Run("first and last of ranking", func(t *testing.T) {
		entries := []models.Feedback{
			locationEntry("Baluarte", intPtr(1), day),
			locationEntry("Manila Cathedral", intPtr(5), day),
		}
		top, bottom := TopAndBottom(entries, CategoryLocation)
		assert.Equal(t, "Manila Cathedral", top)
		assert.Equal(t, "Baluarte", bottom)
	})
}

func TestEntriesInSpan(t *testing.T) {
	march := MonthSpan(2024, time.March)

	entries := []models.Feedback{
		locationEntry("edge start", intPtr(4), march.Start),
		locationEntry("edge end", intPtr(4), march.End),
		locationEntry("inside", intPtr(4), time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)),
		locationEntry("before", intPtr(4), time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)),
		locationEntry("after", intPtr(4), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		{FeedbackType: models.LocationFeedback, Location: "no timestamp", Rating: intPtr(5)},
		featureEntry("feature in march", intPtr(3), time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
	}

	t.Run("boundaries inclusive, undated excluded", func(t *testing.T) {
		got := EntriesInSpan(entries, march, CategoryLocation)
		subjects := make([]string, 0, len(got))
		for _, f := range got {
			subjects = append(subjects, f.Location)
		}
		assert.Equal(t, []string{"edge start", "edge end", "inside"}, subjects)
	})

	t.Run("all tab keeps both types", func(t *testing.T) {
		got := EntriesInSpan(entries, march, CategoryAll)
		assert.Len(t, got, 4)
	})
}
