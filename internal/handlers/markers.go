package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
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

// markerCategories are the map pin types the app understands.
var markerCategories = map[string]bool{
	"historical": true,
	"museum":     true,
	"church":     true,
	"restaurant": true,
	"shop":       true,
	"school":     true,
	"government": true,
	"park":       true,
	"other":      true,
}

var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// MarkerRequest carries marker create/update fields.
type MarkerRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	EntranceFee float64 `json:"entrance_fee"`
	OpenTime    string  `json:"open_time,omitempty"`
	CloseTime   string  `json:"close_time,omitempty"`
}

// validateMarker checks a marker payload. Coordinates must fall inside the
// Intramuros bounding region; opening hours use 24h HH:MM and may not be
// equal.
func validateMarker(req MarkerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.Category != "" && !markerCategories[req.Category] {
		return fmt.Errorf("unknown category %q", req.Category)
	}
	if !services.InIntramuros(req.Latitude, req.Longitude) {
		return fmt.Errorf("coordinates are outside Intramuros")
	}
	if req.EntranceFee < 0 {
		return fmt.Errorf("entrance fee cannot be negative")
	}
	if (req.OpenTime == "") != (req.CloseTime == "") {
		return fmt.Errorf("open and close time must be set together")
	}
	if req.OpenTime != "" {
		if !timeOfDayPattern.MatchString(req.OpenTime) {
			return fmt.Errorf("open time must be HH:MM")
		}
		if !timeOfDayPattern.MatchString(req.CloseTime) {
			return fmt.Errorf("close time must be HH:MM")
		}
		if req.OpenTime == req.CloseTime {
			return fmt.Errorf("open and close time cannot be equal")
		}
	}
	return nil
}

// GetMarkers lists all map markers. Public: the app fetches these too.
func GetMarkers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("markers").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch markers"})
		return
	}
	defer cursor.Close(ctx)

	markers := []models.Marker{}
	if err := cursor.All(ctx, &markers); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode markers"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"markers": markers,
		"count":   len(markers),
	})
}

// CreateMarker adds a map marker.
func CreateMarker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req MarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateMarker(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	now := time.Now().UTC()
	marker := models.Marker{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     strings.TrimSpace(req.Address),
		ImageURL:    req.ImageURL,
		EntranceFee: req.EntranceFee,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("markers").InsertOne(ctx, marker)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to create marker"})
		return
	}
	marker.ID = result.InsertedID.(primitive.ObjectID)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Marker created",
		"marker":  marker,
	})
}

// UpdateMarker replaces a marker's editable fields.
func UpdateMarker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	markerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid marker ID"})
		return
	}

	var req MarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateMarker(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"updated_at":   time.Now().UTC(),
		"name":         strings.TrimSpace(req.Name),
		"description":  strings.TrimSpace(req.Description),
		"category":     req.Category,
		"latitude":     req.Latitude,
		"longitude":    req.Longitude,
		"address":      strings.TrimSpace(req.Address),
		"image_url":    req.ImageURL,
		"entrance_fee": req.EntranceFee,
		"open_time":    req.OpenTime,
		"close_time":   req.CloseTime,
	}}

	result, err := database.DB.Collection("markers").UpdateByID(ctx, markerID, update)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to update marker"})
		return
	}
	if result.MatchedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Marker not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Marker updated"})
}

// DeleteMarker removes a marker from the map.
func DeleteMarker(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	markerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid marker ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("markers").DeleteOne(ctx, bson.M{"_id": markerID})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete marker"})
		return
	}
	if result.DeletedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Marker not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Marker deleted"})
}
