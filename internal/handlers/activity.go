package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/models"
)

// RecordActivityRequest is one dashboard page view.
type RecordActivityRequest struct {
	Path      string `json:"path"`
	EventType string `json:"event_type,omitempty"`
}

// RecordActivity logs a dashboard page view to Postgres for the insights
// chart.
func RecordActivity(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Path is required"})
		return
	}
	if req.EventType == "" {
		req.EventType = "page_view"
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO activity_events (admin_id, path, event_type)
		VALUES ($1, $2, $3)
	`, adminID, req.Path, req.EventType)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to record activity"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}

// newUsersPerDay groups recent signups by calendar day (UTC). Grouping is
// done in memory over a bounded window rather than with an aggregation
// pipeline, matching how the report engine buckets feedback.
func newUsersPerDay(ctx context.Context, since time.Time) (map[string]int, int, error) {
	cursor, err := database.DB.Collection("users").Find(ctx,
		bson.M{"created_at": bson.M{"$gte": since}})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	perDay := make(map[string]int)
	for _, u := range users {
		perDay[u.CreatedAt.UTC().Format("2006-01-02")]++
	}
	return perDay, len(users), nil
}

// GetInsights returns the usage overview: new signups per day over the
// window, user/guest totals and the most viewed dashboard pages.
func GetInsights(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 365 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "days must be between 1 and 365"})
			return
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -days)

	perDay, newUsers, err := newUsersPerDay(ctx, since)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch signups"})
		return
	}

	totalUsers, err := database.DB.Collection("users").CountDocuments(ctx, bson.M{"archived": false})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to count users"})
		return
	}
	totalGuests, err := database.DB.Collection("guests").CountDocuments(ctx, bson.M{})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to count guests"})
		return
	}

	type pageCount struct {
		Path  string `json:"path"`
		Views int    `json:"views"`
	}
	topPages := []pageCount{}

	rows, err := database.PostgresDB.Query(`
		SELECT path, COUNT(*) AS views
		FROM activity_events
		WHERE created_at >= $1 AND event_type = 'page_view'
		GROUP BY path
		ORDER BY views DESC
		LIMIT 10
	`, since)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch page views"})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var pc pageCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to scan page views"})
			return
		}
		topPages = append(topPages, pc)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":           true,
		"window_days":       days,
		"new_users":         newUsers,
		"new_users_per_day": perDay,
		"total_users":       totalUsers,
		"total_guests":      totalGuests,
		"top_pages":         topPages,
	})
}
