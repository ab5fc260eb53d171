package handlers

import (
	"context"
	"encoding/json"
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
	"github.com/tourkita/tourkita-backend/internal/stats"
)

var mailer *services.Mailer

// InitMailer wires the Resend mailer used for feedback replies. When the
// API key is empty replies are stored but not emailed.
func InitMailer(apiKey, from string) {
	if apiKey == "" {
		log.Println("⚠️ RESEND_API_KEY not set; feedback replies will not be emailed")
		return
	}
	mailer = services.NewMailer(apiKey, from)
	log.Println("✅ Mailer initialized")
}

// SubmitFeedbackRequest is the public feedback submission from the app.
type SubmitFeedbackRequest struct {
	FeedbackType string `json:"feedback_type"`
	Location     string `json:"location,omitempty"`
	Feature      string `json:"feature,omitempty"`
	Rating       *int   `json:"rating,omitempty"`
	Comment      string `json:"comment,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Email        string `json:"email,omitempty"`
}

// SubmitFeedback accepts a feedback entry from the app and pushes it onto
// the live dashboard feed.
func SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}

	feedbackType := models.FeedbackType(req.FeedbackType)
	switch feedbackType {
	case models.LocationFeedback:
		if strings.TrimSpace(req.Location) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Location is required for location feedback"})
			return
		}
		req.Feature = ""
	case models.AppFeedback:
		if strings.TrimSpace(req.Feature) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Feature is required for app feedback"})
			return
		}
		req.Location = ""
	default:
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "feedback_type must be LocationFeedback or AppFeedback"})
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Rating must be between 1 and 5"})
		return
	}

	now := time.Now().UTC()
	feedback := models.Feedback{
		FeedbackType: feedbackType,
		Location:     strings.TrimSpace(req.Location),
		Feature:      strings.TrimSpace(req.Feature),
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		ImageURL:     req.ImageURL,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedAt:    &now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("feedbacks").InsertOne(ctx, feedback)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save feedback"})
		return
	}
	feedback.ID = result.InsertedID.(primitive.ObjectID)

	// Report payloads are cached; a new entry invalidates them.
	_ = services.Cache.Delete(services.CacheKey("feedbacks", "all"))

	if err := services.PublishFeedEvent(ctx, services.FeedEvent{
		Type:     "feedback_submitted",
		Feedback: &feedback,
	}); err != nil {
		log.Printf("failed to publish feedback feed event: %v", err)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  "Feedback submitted",
		"feedback": feedback,
	})
}

// fetchAllFeedbacks loads the full feedback collection, newest first,
// through the report cache.
func fetchAllFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	cacheKey := services.CacheKey("feedbacks", "all")

	var cached []models.Feedback
	if hit, err := services.Cache.Get(cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	cursor, err := database.DB.Collection("feedbacks").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}

	if err := services.Cache.Set(cacheKey, feedbacks); err != nil {
		log.Printf("failed to cache feedbacks: %v", err)
	}
	return feedbacks, nil
}

// GetFeedbacks lists feedback for the review table with optional
// ?category= and ?search= filters, newest first.
func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	category := stats.ParseCategory(r.URL.Query().Get("category"))

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	feedbacks, err := fetchAllFeedbacks(ctx)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch feedback"})
		return
	}

	filtered := make([]models.Feedback, 0, len(feedbacks))
	for _, f := range feedbacks {
		if stats.Matches(f, category) {
			filtered = append(filtered, f)
		}
	}
	filtered = stats.FilterSearch(filtered, r.URL.Query().Get("search"))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"feedbacks": filtered,
		"count":     len(filtered),
	})
}

// DeleteFeedback removes a feedback entry.
func DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	feedbackID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid feedback ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("feedbacks").DeleteOne(ctx, bson.M{"_id": feedbackID})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete feedback"})
		return
	}
	if result.DeletedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Feedback not found"})
		return
	}

	_ = services.Cache.Delete(services.CacheKey("feedbacks", "all"))

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Feedback deleted"})
}

// ReplyFeedbackRequest is an admin reply to a feedback entry.
type ReplyFeedbackRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReplyFeedback stores an admin reply against a feedback entry and emails
// it to the submitter when an address is on file.
func ReplyFeedback(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	feedbackID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid feedback ID"})
		return
	}

	var req ReplyFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Subject and body are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var feedback models.Feedback
	if err := database.DB.Collection("feedbacks").FindOne(ctx, bson.M{"_id": feedbackID}).Decode(&feedback); err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Feedback not found"})
		return
	}

	emailSent := false
	if feedback.Email != "" && mailer != nil {
		if _, err := mailer.SendReply(feedback.Email, req.Subject, req.Body); err != nil {
			log.Printf("failed to email feedback reply: %v", err)
		} else {
			emailSent = true
		}
	}

	message := models.AdminMessage{
		CreatedAt:  time.Now().UTC(),
		FeedbackID: feedbackID,
		Email:      feedback.Email,
		Subject:    strings.TrimSpace(req.Subject),
		Body:       strings.TrimSpace(req.Body),
		AdminID:    adminID.String(),
		EmailSent:  emailSent,
	}

	if _, err := database.DB.Collection("adminMessages").InsertOne(ctx, message); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save reply"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"message":    "Reply recorded",
		"email_sent": emailSent,
	})
}

// GetFeedbackReplies lists the reply audit trail for a feedback entry.
func GetFeedbackReplies(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	feedbackID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid feedback ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("adminMessages").Find(ctx,
		bson.M{"feedback_id": feedbackID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch replies"})
		return
	}
	defer cursor.Close(ctx)

	replies := []models.AdminMessage{}
	if err := cursor.All(ctx, &replies); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode replies"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"replies": replies,
		"count":   len(replies),
	})
}
