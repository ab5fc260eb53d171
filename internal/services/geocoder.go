package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Intramuros bounding region: coordinate picking on the dashboard map is
// constrained to the walled city.
const (
	IntramurosMinLat = 14.5830
	IntramurosMaxLat = 14.6005
	IntramurosMinLng = 120.9680
	IntramurosMaxLng = 120.9835
)

// GeocodeResult is the address found for a picked coordinate.
type GeocodeResult struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// InIntramuros reports whether a coordinate lies inside the supported
// bounding region.
func InIntramuros(lat, lng float64) bool {
	return lat >= IntramurosMinLat && lat <= IntramurosMaxLat &&
		lng >= IntramurosMinLng && lng <= IntramurosMaxLng
}

// Geocoder reverse-geocodes coordinates through OSM Nominatim.
// Nominatim requires an identifying User-Agent and allows 1 req/sec.
type Geocoder struct {
	UserAgent string
	Client    *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewGeocoder creates a Nominatim-backed geocoder.
func NewGeocoder(userAgent string) *Geocoder {
	return &Geocoder{
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode resolves a coordinate to a display address. Returns nil
// when Nominatim has no address for the point.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	g.mu.Lock()
	elapsed := time.Since(g.lastCall)
	if elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	g.lastCall = time.Now()
	g.mu.Unlock()

	u := fmt.Sprintf("https://nominatim.openstreetmap.org/reverse?format=jsonv2&lat=%f&lon=%f&addressdetails=1", lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error: %d", resp.StatusCode)
	}

	var data struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road        string `json:"road"`
			HouseNumber string `json:"house_number"`
			Suburb      string `json:"suburb"`
			City        string `json:"city"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	addr := data.Address.Road
	if data.Address.HouseNumber != "" {
		addr = fmt.Sprintf("%s %s", data.Address.HouseNumber, addr)
	}
	if addr == "" {
		addr = data.DisplayName
	}
	if addr == "" {
		return nil, nil
	}

	return &GeocodeResult{Lat: lat, Lng: lng, Address: addr}, nil
}
