package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"trip-log-service/internal/adapters/httpclient"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

// Cache is a persistent read-through store for computed routes, keyed by
// the waypoint coordinate string.
type Cache interface {
	Get(ctx context.Context, key string) (domain.Route, bool, error)
	Put(ctx context.Context, key string, route domain.Route) error
}

// OSRMRouteProvider computes driving routes using the OSRM HTTP API.
// Safe for concurrent use.
type OSRMRouteProvider struct {
	client  *httpclient.Client
	baseURL string
	cache   Cache
}

const defaultBaseURL = "http://router.project-osrm.org"

func NewOSRMRouteProvider(baseURL string, cache Cache) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OSRMRouteProvider{
		client:  httpclient.New(30 * time.Second),
		baseURL: baseURL,
		cache:   cache,
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
		Geometry json.RawMessage `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute returns the driving route visiting the waypoints in order.
func (p *OSRMRouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	if len(waypoints) < 2 {
		return domain.Route{}, errors.New("get route: at least two waypoints are required")
	}

	coords := make([]string, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, wp.LonLat())
	}
	key := strings.Join(coords, ";")

	if p.cache != nil {
		route, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			return domain.Route{}, fmt.Errorf("route cache read: %w", err)
		}
		if ok {
			return route, nil
		}
	}

	endpoint := p.baseURL + "/route/v1/driving/" + key
	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		q.Set("steps", "false")
		q.Set("annotations", "false")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" {
		msg := decoded.Message
		if msg == "" {
			msg = "unknown error"
		}
		return domain.Route{}, fmt.Errorf("OSRM routing failed: %s", msg)
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, errors.New("OSRM returned no routes")
	}

	r := decoded.Routes[0]
	if len(r.Legs) != len(waypoints)-1 {
		return domain.Route{}, fmt.Errorf(
			"OSRM returned %d legs for %d waypoints",
			len(r.Legs), len(waypoints),
		)
	}

	route := domain.Route{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Geometry:        r.Geometry,
		Legs:            make([]domain.RouteLeg, 0, len(r.Legs)),
	}
	for _, leg := range r.Legs {
		route.Legs = append(route.Legs, domain.RouteLeg{
			DistanceMeters:  leg.Distance,
			DurationSeconds: leg.Duration,
		})
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, route); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return route, nil
}
