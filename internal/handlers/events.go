package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/models"
	"github.com/tourkita/tourkita-backend/internal/services"
)

// EventRequest carries event create/update fields.
type EventRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Latitude     float64   `json:"latitude,omitempty"`
	Longitude    float64   `json:"longitude,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// validateEvent checks an event payload. Coordinates are optional; when
// set, both must be and they must fall inside Intramuros.
func validateEvent(req EventRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if (req.Latitude != 0) != (req.Longitude != 0) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	if req.Latitude != 0 && !services.InIntramuros(req.Latitude, req.Longitude) {
		return fmt.Errorf("coordinates are outside Intramuros")
	}
	return nil
}

// GetEvents lists events, soonest starting first. Public: the app fetches
// these too. ?upcoming=true hides events that already ended.
func GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("upcoming") == "true" {
		filter["end_date"] = bson.M{"$gte": time.Now().UTC()}
	}

	cursor, err := database.DB.Collection("events").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch events"})
		return
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode events"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}

// CreateEvent adds a scheduled event.
func CreateEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateEvent(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		CreatedAt:    now,
		UpdatedAt:    now,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		LocationName: strings.TrimSpace(req.LocationName),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ImageURL:     req.ImageURL,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate.UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("events").InsertOne(ctx, event)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to create event"})
		return
	}
	event.ID = result.InsertedID.(primitive.ObjectID)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Event created",
		"event":   event,
	})
}

// UpdateEvent replaces an event's editable fields.
func UpdateEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid event ID"})
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateEvent(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"updated_at":    time.Now().UTC(),
		"title":         strings.TrimSpace(req.Title),
		"description":   strings.TrimSpace(req.Description),
		"location_name": strings.TrimSpace(req.LocationName),
		"latitude":      req.Latitude,
		"longitude":     req.Longitude,
		"image_url":     req.ImageURL,
		"start_date":    req.StartDate.UTC(),
		"end_date":      req.EndDate.UTC(),
	}}

	result, err := database.DB.Collection("events").UpdateByID(ctx, eventID, update)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to update event"})
		return
	}
	if result.MatchedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Event not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Event updated"})
}

// DeleteEvent removes an event.
func DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid event ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("events").DeleteOne(ctx, bson.M{"_id": eventID})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete event"})
		return
	}
	if result.DeletedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Event not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Event deleted"})
}
