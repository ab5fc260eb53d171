package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tourkita/tourkita-backend/internal/database"
	"github.com/tourkita/tourkita-backend/internal/services"
	"github.com/tourkita/tourkita-backend/pkg/utils"
)

// AdminSigninRequest represents the request to sign in to the dashboard
type AdminSigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminSigninResponse represents the response after admin signin
type AdminSigninResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Admin   map[string]interface{} `json:"admin,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAdminAuth validates the session token on an admin route. On
// failure it writes a 401 envelope and returns ok=false.
func requireAdminAuth(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	adminID, ok, err := services.ValidateAdminSession(token)
	if err != nil || !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Admin authentication required",
		})
		return uuid.Nil, false
	}
	return adminID, true
}

// AdminSignin handles dashboard login. Admin accounts are created directly
// in the database; there is no signup endpoint.
func AdminSignin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req AdminSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Username and password are required"})
		return
	}

	var adminID uuid.UUID
	var username, email, passwordHash string
	var isActive bool
	var createdAt time.Time

	err := database.PostgresDB.QueryRow(`
		SELECT id, created_at, username, email, password_hash, is_active
		FROM admins
		WHERE username = $1
	`, req.Username).Scan(&adminID, &createdAt, &username, &email, &passwordHash, &isActive)
	if err != nil {
		if err == sql.ErrNoRows {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Database error"})
		return
	}

	if !isActive {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Admin account is inactive"})
		return
	}

	valid, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !valid {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	token, err := services.CreateAdminSession(adminID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(AdminSigninResponse{Success: false, Message: "Failed to create session"})
		return
	}

	json.NewEncoder(w).Encode(AdminSigninResponse{
		Success: true,
		Message: "Admin signed in successfully",
		Admin: map[string]interface{}{
			"id":         adminID.String(),
			"username":   username,
			"email":      email,
			"created_at": createdAt,
		},
		Token: token,
	})
}

// AdminSignout invalidates the caller's session token.
func AdminSignout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	token := extractBearerToken(r.Header.Get("Authorization"))
	if err := services.InvalidateAdminSession(token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to sign out"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Signed out"})
}

// AdminMe returns the signed-in admin's profile, for route guards.
func AdminMe(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var username, email string
	var createdAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT username, email, created_at FROM admins WHERE id = $1
	`, adminID).Scan(&username, &email, &createdAt)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Database error"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"admin": map[string]interface{}{
			"id":         adminID.String(),
			"username":   username,
			"email":      email,
			"created_at": createdAt,
		},
	})
}
