package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
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

var notificationAudiences = map[string]bool{
	"all":        true,
	"registered": true,
	"guests":     true,
}

// NotificationRequest carries notification create/update fields.
type NotificationRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Audience string `json:"audience"`
}

func validateNotification(req NotificationRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if !notificationAudiences[req.Audience] {
		return fmt.Errorf("audience must be all, registered or guests")
	}
	return nil
}

// GetNotifications lists notifications, newest first. Drafts have a nil
// delivered_at.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("notifications").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch notifications"})
		return
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode notifications"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// CreateNotification saves a draft notification.
func CreateNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateNotification(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	now := time.Now().UTC()
	notification := models.Notification{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     strings.TrimSpace(req.Title),
		Message:   strings.TrimSpace(req.Message),
		Audience:  req.Audience,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("notifications").InsertOne(ctx, notification)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to create notification"})
		return
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"message":      "Notification created",
		"notification": notification,
	})
}

// UpdateNotification edits a draft. Sent notifications are immutable.
func UpdateNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	notificationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid notification ID"})
		return
	}

	var req NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if err := validateNotification(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"updated_at": time.Now().UTC(),
		"title":      strings.TrimSpace(req.Title),
		"message":    strings.TrimSpace(req.Message),
		"audience":   req.Audience,
	}}

	result, err := database.DB.Collection("notifications").UpdateOne(ctx,
		bson.M{"_id": notificationID, "delivered_at": nil}, update)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Notification not found or already sent"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Notification updated"})
}

// SendNotification marks a draft as delivered and pushes it onto the live
// dashboard feed. Sending twice is rejected.
func SendNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	notificationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	var notification models.Notification
	err = database.DB.Collection("notifications").FindOneAndUpdate(ctx,
		bson.M{"_id": notificationID, "delivered_at": nil},
		bson.M{"$set": bson.M{"delivered_at": now, "updated_at": now}},
	).Decode(&notification)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Notification not found or already sent"})
		return
	}

	if err := services.PublishFeedEvent(ctx, services.FeedEvent{
		Type:    "notification_sent",
		Title:   notification.Title,
		Message: notification.Message,
	}); err != nil {
		log.Printf("failed to publish notification feed event: %v", err)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Notification sent"})
}

// DeleteNotification removes a notification (draft or sent).
func DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	notificationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("notifications").DeleteOne(ctx, bson.M{"_id": notificationID})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete notification"})
		return
	}
	if result.DeletedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Notification not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Notification deleted"})
}
