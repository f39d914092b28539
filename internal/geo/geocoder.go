// Package geo resolves free-text addresses to coordinates and driving
// distances using the OpenRouteService API. All external failures collapse
// to an absent result so callers can fall back to manual distance entry.
package geo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/padyakph/hatidbot/internal/logger"
)

// Coordinate is a (longitude, latitude) pair in WGS 84 degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

const (
	// DefaultBaseURL points at the public OpenRouteService API.
	DefaultBaseURL = "https://api.openrouteservice.org"

	geocodeTimeout = 30 * time.Second
)

// Geocoder resolves a free-text address via the ORS geocode search endpoint.
type Geocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewGeocoder constructs a Geocoder. A nil client falls back to a client with
// the geocode timeout; an empty baseURL falls back to the public API.
func NewGeocoder(apiKey, baseURL string, client *http.Client) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: geocodeTimeout}
	}
	return &Geocoder{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		log:     logger.Component("geo"),
	}
}

// Geocode resolves an address into a coordinate pair. The second return value
// is false when no candidate was found or the lookup failed in any way; the
// caller cannot distinguish the two.
func (g *Geocoder) Geocode(ctx context.Context, address string) (Coordinate, bool) {
	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("api_key", g.apiKey)
	q.Set("text", address)
	endpoint := g.baseURL + "/geocode/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinate{}, false
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.warn(ctx, "geocode.request", err.Error())
		return Coordinate{}, false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		g.warn(ctx, "geocode.status", resp.Status)
		return Coordinate{}, false
	}

	var payload struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.warn(ctx, "geocode.decode", err.Error())
		return Coordinate{}, false
	}
	if len(payload.Features) == 0 {
		g.log.LogAttrs(ctx, slog.LevelDebug, "geocode.miss",
			slog.String("status", "skip"),
			slog.String("query", logger.SanitizeLimit(address, 128)),
		)
		return Coordinate{}, false
	}

	// The first candidate is authoritative; ORS orders by match confidence.
	coords := payload.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		g.warn(ctx, "geocode.decode", "first candidate has no coordinate pair")
		return Coordinate{}, false
	}
	return Coordinate{Lon: coords[0], Lat: coords[1]}, true
}

func (g *Geocoder) warn(ctx context.Context, event, cause string) {
	g.log.LogAttrs(ctx, slog.LevelWarn, event,
		slog.String("status", "fail"),
		slog.String("cause", cause),
	)
}
