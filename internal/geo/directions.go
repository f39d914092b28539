package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/padyakph/hatidbot/internal/logger"
)

const directionsTimeout = 30 * time.Second

// Directions obtains driving distances from the ORS directions endpoint.
type Directions struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewDirections constructs a Directions client with the same defaulting rules
// as NewGeocoder.
func NewDirections(apiKey, baseURL string, client *http.Client) *Directions {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: directionsTimeout}
	}
	return &Directions{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		log:     logger.Component("geo"),
	}
}

// Distance returns the driving distance in kilometers between origin and
// destination. The second return value is false on any transport or parse
// failure.
func (d *Directions) Distance(ctx context.Context, origin, destination Coordinate) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, directionsTimeout)
	defer cancel()

	body, err := json.Marshal(map[string][][]float64{
		"coordinates": {
			{origin.Lon, origin.Lat},
			{destination.Lon, destination.Lat},
		},
	})
	if err != nil {
		return 0, false
	}

	endpoint := d.baseURL + "/v2/directions/driving-car"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, false
	}
	req.Header.Set("Authorization", d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.warn(ctx, "directions.request", err.Error())
		return 0, false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		d.warn(ctx, "directions.status", resp.Status)
		return 0, false
	}

	var payload struct {
		Routes []struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
			} `json:"summary"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		d.warn(ctx, "directions.decode", err.Error())
		return 0, false
	}
	if len(payload.Routes) == 0 {
		d.warn(ctx, "directions.decode", "no routes in response")
		return 0, false
	}

	return payload.Routes[0].Summary.Distance / 1000, true
}

func (d *Directions) warn(ctx context.Context, event, cause string) {
	d.log.LogAttrs(ctx, slog.LevelWarn, event,
		slog.String("status", "fail"),
		slog.String("cause", cause),
	)
}
