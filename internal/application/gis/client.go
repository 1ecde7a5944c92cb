package gis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var ErrNoQuery = errors.New("An address or parcel number is required")

// cacheTTL: parcel elevations do not move; a day keeps repeat lookups off
// the external service without holding stale data forever.
const cacheTTL = 24 * time.Hour

// Lookup is the subset of parcel/GIS data the wizard consumes. Elevation
// is opaque to the core: a finite number or absent, nothing more.
type Lookup struct {
	Query         string   `json:"query"`
	ElevationFeet *float64 `json:"elevation_feet"`
	ParcelNumber  string   `json:"parcel_number,omitempty"`
}

type elevationResponse struct {
	ElevationFeet *float64 `json:"elevation_feet"`
	Elevation     *float64 `json:"elevation"` // some providers use this key
	ParcelNumber  string   `json:"parcel_number"`
}

// Service resolves site elevation from an external elevation/parcel API,
// caching results in redis when a client is configured. A nil redis
// client disables caching.
type Service struct {
	BaseURL string
	Client  *http.Client
	Rdb     *redis.Client
}

func cacheKey(query string) string {
	return "gis:elevation:" + strings.ToLower(strings.TrimSpace(query))
}

// LookupElevation fetches elevation data for an address or parcel query.
func (s *Service) LookupElevation(ctx context.Context, query string) (*Lookup, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoQuery
	}

	if s.Rdb != nil {
		if cached, err := s.Rdb.Get(ctx, cacheKey(query)).Bytes(); err == nil {
			var l Lookup
			if json.Unmarshal(cached, &l) == nil {
				return &l, nil
			}
		}
	}

	if s.BaseURL == "" {
		return nil, fmt.Errorf("gis: ELEVATION_API_URL is not set")
	}
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 10 * time.Second}
	}

	reqURL := strings.TrimRight(s.BaseURL, "/") + "/lookup?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gis request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gis error: status %d body: %s", resp.StatusCode, string(body))
	}

	var data elevationResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("gis response: %w", err)
	}

	elevation := data.ElevationFeet
	if elevation == nil {
		elevation = data.Elevation
	}
	// Non-finite values from the provider degrade to absent.
	if elevation != nil && (math.IsNaN(*elevation) || math.IsInf(*elevation, 0)) {
		elevation = nil
	}

	result := &Lookup{Query: query, ElevationFeet: elevation, ParcelNumber: data.ParcelNumber}

	if s.Rdb != nil {
		if encoded, err := json.Marshal(result); err == nil {
			if err := s.Rdb.Set(ctx, cacheKey(query), encoded, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("query", query).Msg("Could not cache elevation lookup")
			}
		}
	}
	return result, nil
}

// FormatElevation renders an elevation for display, or "unknown".
func FormatElevation(elevation *float64) string {
	if elevation == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*elevation, 'f', 1, 64) + " ft"
}
