package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tourkita/tourkita-backend/internal/models"
)

func TestMatchesSearch(t *testing.T) {
	created := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	record := models.Feedback{
		FeedbackType: models.LocationFeedback,
		Location:     "Fort Santiago",
		Comment:      "Great view of the Pasig river",
		Email:        "juan@example.com",
		Rating:       intPtr(4),
		CreatedAt:    &created,
	}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term matches", "", true},
		{"email substring", "juan@", true},
		{"subject case-insensitive", "fort santiago", true},
		{"comment substring", "pasig", true},
		{"formatted date", "Mar 10", true},
		{"iso date", "2024-03-10", true},
		{"stringified rating", "4", true},
		{"no match", "casa manila", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(record, tt.term))
		})
	}
}

func TestFilterSearchKeepsUnratedRecords(t *testing.T) {
	created := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	entries := []models.Feedback{
		{FeedbackType: models.LocationFeedback, Location: "Fort Santiago", Rating: intPtr(0), CreatedAt: &created},
		{FeedbackType: models.LocationFeedback, Location: "Fort Santiago", CreatedAt: &created},
		{FeedbackType: models.LocationFeedback, Location: "Casa Manila", Rating: intPtr(5), CreatedAt: &created},
	}

	// Zero/nil ratings are excluded from averages but still searchable.
	got := FilterSearch(entries, "fort")
	assert.Len(t, got, 2)

	_, ok := AverageRating(got)
	assert.False(t, ok)
}
