package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/tourkita/tourkita-backend/internal/services"
)

var geocoder *services.Geocoder

// InitGeocoder wires the Nominatim reverse geocoder used by the marker and
// event coordinate pickers.
func InitGeocoder(userAgent string) {
	geocoder = services.NewGeocoder(userAgent)
	log.Println("✅ Geocoder initialized")
}

// ReverseGeocode resolves a picked map coordinate to an address.
// Coordinates outside the Intramuros bounding region are rejected before
// hitting Nominatim.
func ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "lat and lng are required"})
		return
	}

	if !services.InIntramuros(lat, lng) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Coordinates are outside Intramuros"})
		return
	}

	result, err := geocoder.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		log.Printf("reverse geocode failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Geocoding service unavailable"})
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "No address found for coordinate"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
