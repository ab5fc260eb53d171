package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/export"
	"github.com/tourkita/tourkita-backend/internal/models"
)

// GetUsers lists app users for the management table. ?archived=true
// switches to the archived view; the default hides archived accounts.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	archived := r.URL.Query().Get("archived") == "true"

	cursor, err := database.DB.Collection("users").Find(ctx,
		bson.M{"archived": archived},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode users"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// GetGuests lists anonymous guest sessions, most recently active first.
func GetGuests(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("guests").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "last_active_at", Value: -1}}),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch guests"})
		return
	}
	defer cursor.Close(ctx)

	guests := []models.Guest{}
	if err := cursor.All(ctx, &guests); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to decode guests"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"guests":  guests,
		"count":   len(guests),
	})
}

func setUserArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"archived":   archived,
		"is_active":  !archived,
		"updated_at": time.Now().UTC(),
	}}

	result, err := database.DB.Collection("users").UpdateByID(ctx, userID, update)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to update user"})
		return
	}
	if result.MatchedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "User not found"})
		return
	}

	message := "User restored"
	if archived {
		message = "User archived"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": message})
}

// ArchiveUser soft-deletes a user account. Archived users keep their
// feedback history but can no longer sign in.
func ArchiveUser(w http.ResponseWriter, r *http.Request) {
	setUserArchived(w, r, true)
}

// RestoreUser brings an archived account back.
func RestoreUser(w http.ResponseWriter, r *http.Request) {
	setUserArchived(w, r, false)
}

// DeleteUser permanently removes an account. Only archived accounts can
// be deleted, so removal is always a two-step action.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("users").DeleteOne(ctx, bson.M{"_id": userID, "archived": true})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "User not found or not archived"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "User deleted"})
}

func fetchUsersForExport(ctx context.Context, archived bool) ([]models.User, error) {
	cursor, err := database.DB.Collection("users").Find(ctx,
		bson.M{"archived": archived},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ExportUsersCSV downloads the current user table as CSV.
func ExportUsersCSV(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	users, err := fetchUsersForExport(ctx, r.URL.Query().Get("archived") == "true")
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	out, err := export.UsersCSV(users)
	if err != nil {
		http.Error(w, "Failed to build CSV", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("tourkita-users-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(out))
}

// ExportUsersPDF downloads the current user table as a PDF report.
func ExportUsersPDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	users, err := fetchUsersForExport(ctx, r.URL.Query().Get("archived") == "true")
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	out, err := export.UsersPDF(users, "TourKita User Report")
	if err != nil {
		http.Error(w, "Failed to build PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("tourkita-users-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(out)
}
