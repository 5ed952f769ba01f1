package offers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// BoundingBox bounds a live-position query by latitude/longitude.
type BoundingBox struct {
	LatMin float64
	LonMin float64
	LatMax float64
	LonMax float64
}

// State is one live aircraft position record.
type State struct {
	ID            string
	Callsign      string
	OriginCountry string
	Longitude     float64
	Latitude      float64
	Altitude      float64
	Velocity      float64
	TrueTrack     float64
}

// PositionProvider fetches live position records inside a bounding box.
type PositionProvider interface {
	States(ctx context.Context, box BoundingBox) ([]State, error)
}

// OpenSkyClient queries the OpenSky states/all endpoint.
type OpenSkyClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewOpenSkyClient builds a client against the given API base URL.
func NewOpenSkyClient(baseURL string, timeout time.Duration, log *zap.Logger) *OpenSkyClient {
	return &OpenSkyClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// States returns the live position records currently inside box.
func (c *OpenSkyClient) States(ctx context.Context, box BoundingBox) ([]State, error) {
	query := url.Values{}
	query.Set("lamin", strconv.FormatFloat(box.LatMin, 'f', -1, 64))
	query.Set("lomin", strconv.FormatFloat(box.LonMin, 'f', -1, 64))
	query.Set("lamax", strconv.FormatFloat(box.LatMax, 'f', -1, 64))
	query.Set("lomax", strconv.FormatFloat(box.LonMax, 'f', -1, 64))

	endpoint := c.baseURL + "/states/all?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensky: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Time   int64   `json:"time"`
		States [][]any `json:"states"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}

	states := make([]State, 0, len(payload.States))
	for _, row := range payload.States {
		states = append(states, State{
			ID:            stringAt(row, 0),
			Callsign:      stringAt(row, 1),
			OriginCountry: stringAt(row, 2),
			Longitude:     floatAt(row, 5),
			Latitude:      floatAt(row, 6),
			Altitude:      floatAt(row, 7),
			Velocity:      floatAt(row, 9),
			TrueTrack:     floatAt(row, 10),
		})
	}

	c.log.Debug("opensky states fetched", zap.Int("count", len(states)))
	return states, nil
}

// Each raw record is a fixed-position array mixing strings, numbers
// and nulls; missing or null cells read as zero values.
func stringAt(row []any, i int) string {
	if i < len(row) {
		if s, ok := row[i].(string); ok {
			return s
		}
	}
	return ""
}

func floatAt(row []any, i int) float64 {
	if i < len(row) {
		if f, ok := row[i].(float64); ok {
			return f
		}
	}
	return 0
}
