package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourkita/tourkita-backend/internal/models"
	"github.com/tourkita/tourkita-backend/internal/stats"
)

func sampleUsers() []models.User {
	return []models.User{
		{
			ID:            primitive.NewObjectID(),
			Email:         "juan@example.com",
			Name:          "Juan dela Cruz",
			Age:           28,
			Gender:        "male",
			ContactNumber: "+63 912 555 0101",
			Status:        "verified",
			IsActive:      true,
			UserType:      "registered",
			CreatedAt:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        primitive.NewObjectID(),
			Email:     "maria@example.com",
			Name:      "Maria Clara",
			UserType:  "guest",
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestUsersCSV(t *testing.T) {
	out, err := UsersCSV(sampleUsers())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,email,name,age,gender,contact,status,active,user_type,registered", lines[0])
	assert.Contains(t, lines[1], "juan@example.com")
	assert.Contains(t, lines[1], "active")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[2], "inactive")
}

func TestUsersPDF(t *testing.T) {
	out, err := UsersPDF(sampleUsers(), "TourKita Users")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFeedbackSummaryPDFEmptyPeriod(t *testing.T) {
	// An empty period must render "No data" rather than fail.
	out, err := FeedbackSummaryPDF(nil, stats.CategoryAll, "March 2024")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFeedbackSummaryPDF(t *testing.T) {
	rating := 5
	created := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []models.Feedback{
		{FeedbackType: models.LocationFeedback, Location: "Fort Santiago", Rating: &rating, CreatedAt: &created},
	}
	out, err := FeedbackSummaryPDF(entries, stats.CategoryLocation, "March 2024")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
