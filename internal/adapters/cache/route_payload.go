package cache

import (
	"encoding/json"
	"fmt"

	"trip-log-service/internal/domain"
)

// Stored JSON shape for a cached route. Leg endpoint names are not stored;
// they are re-annotated from the trip waypoints after every lookup.
type routePayload struct {
	DistanceMeters  float64           `json:"distance_meters"`
	DurationSeconds float64           `json:"duration_seconds"`
	Geometry        json.RawMessage   `json:"geometry"`
	Legs            []routeLegPayload `json:"legs"`
}

type routeLegPayload struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func encodeRoute(route domain.Route) ([]byte, error) {
	payload := routePayload{
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Geometry:        route.Geometry,
		Legs:            make([]routeLegPayload, 0, len(route.Legs)),
	}
	for _, leg := range route.Legs {
		payload.Legs = append(payload.Legs, routeLegPayload{
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode route payload: %w", err)
	}
	return b, nil
}

func decodeRoute(b []byte) (domain.Route, error) {
	var payload routePayload
	if err := json.Unmarshal(b, &payload); err != nil {
		return domain.Route{}, fmt.Errorf("decode route payload: %w", err)
	}

	route := domain.Route{
		DistanceMeters:  payload.DistanceMeters,
		DurationSeconds: payload.DurationSeconds,
		Geometry:        payload.Geometry,
		Legs:            make([]domain.RouteLeg, 0, len(payload.Legs)),
	}
	for _, leg := range payload.Legs {
		route.Legs = append(route.Legs, domain.RouteLeg{
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
	}
	return route, nil
}
