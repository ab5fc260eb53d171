package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tourkita/tourkita-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// Upload folders, per asset kind.
const (
	uploadFolderMarkers  = "tourkita/markers"
	uploadFolderEvents   = "tourkita/events"
	uploadFolderFeedback = "tourkita/feedback"
)

// InitCloudinaryService wires the Cloudinary uploader. Uploads 503 when the
// credentials are missing.
func InitCloudinaryService(cloudName, apiKey, apiSecret string) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("⚠️ Cloudinary credentials not set; uploads disabled")
		return
	}
	svc, err := services.NewCloudinaryService(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Printf("⚠️ Failed to initialize Cloudinary: %v", err)
		return
	}
	cloudinaryService = svc
	log.Println("✅ Cloudinary service initialized")
}

func uploadFolder(kind string) string {
	switch kind {
	case "event":
		return uploadFolderEvents
	case "feedback":
		return uploadFolderFeedback
	default:
		return uploadFolderMarkers
	}
}

// UploadImage accepts a multipart image and returns its Cloudinary URL.
// ?kind=marker|event|feedback picks the destination folder.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	if cloudinaryService == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Uploads are not configured"})
		return
	}

	// 10 MB upload cap
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid multipart form"})
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Missing file field"})
		return
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, uploadFolder(r.URL.Query().Get("kind")))
	if err != nil {
		log.Printf("upload failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Upload failed"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
