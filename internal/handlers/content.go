package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/models"
)

var contentSlugs = map[string]bool{
	models.ContentServices: true,
	models.ContentPrivacy:  true,
	models.ContentFAQ:      true,
}

// GetContent returns one singleton content page by slug. Public: the app
// renders these pages. A slug that was never written returns an empty doc
// rather than a 404, so the editor always has something to start from.
func GetContent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	slug := chi.URLParam(r, "slug")
	if !contentSlugs[slug] {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Unknown content page"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var doc models.ContentDoc
	err := database.DB.Collection("content").FindOne(ctx, bson.M{"_id": slug}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		doc = models.ContentDoc{Slug: slug, Sections: []models.ContentSection{}}
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch content"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"content": doc,
	})
}

// UpdateContentRequest carries the full replacement body of a content page.
type UpdateContentRequest struct {
	Title    string                  `json:"title,omitempty"`
	Sections []models.ContentSection `json:"sections"`
}

// UpdateContent upserts a singleton content page. The whole document is
// replaced; there is no partial section editing.
func UpdateContent(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	slug := chi.URLParam(r, "slug")
	if !contentSlugs[slug] {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Unknown content page"})
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Sections == nil {
		req.Sections = []models.ContentSection{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	doc := models.ContentDoc{
		Slug:      slug,
		Title:     req.Title,
		Sections:  req.Sections,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: adminID.String(),
	}

	_, err := database.DB.Collection("content").ReplaceOne(ctx,
		bson.M{"_id": slug}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save content"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Content saved",
		"content": doc,
	})
}
