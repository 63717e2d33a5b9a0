package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trip-log-service/internal/adapters/httpclient"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

// No geocoder result for the requested location. Surfaced to the caller as
// a client input error rather than an upstream failure.
var ErrLocationNotFound = errors.New("location not found")

// Cache is a persistent read-through store for geocode results.
type Cache interface {
	Get(ctx context.Context, address string) (domain.Place, bool, error)
	Put(ctx context.Context, address string, place domain.Place) error
}

// NominatimGeocoder resolves free-text locations using the OpenStreetMap
// Nominatim search API, with a persistent cache in front of it.
// Safe for concurrent use.
type NominatimGeocoder struct {
	client  *httpclient.Client
	baseURL string
	cache   Cache
}

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim usage policy requires an identifying User-Agent.
const userAgent = "TripLogService/1.0"

func NewNominatimGeocoder(baseURL string, cache Cache) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &NominatimGeocoder{
		client:  httpclient.New(10 * time.Second),
		baseURL: baseURL,
		cache:   cache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *NominatimGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Nominatim serializes lat/lon as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a location string to coordinates and a display name.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := g.normalize(location)
	if norm == "" {
		return domain.Place{}, errors.New("geocode: location must be non-empty")
	}

	if g.cache != nil {
		place, ok, err := g.cache.Get(ctx, norm)
		if err != nil {
			return domain.Place{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if ok {
			return place, nil
		}
	}

	endpoint := g.baseURL + "/search"
	resp, err := g.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Place{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", location, ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse geocode latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse geocode longitude %q: %w", results[0].Lon, err)
	}

	displayName := results[0].DisplayName
	if displayName == "" {
		displayName = norm
	}

	place := domain.Place{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		DisplayName: displayName,
		City:        domain.CityFromDisplayName(displayName),
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, norm, place); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return place, nil
}
