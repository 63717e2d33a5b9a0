package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Contract for computing a driving route through an ordered waypoint list.
type RouteProvider interface {
	// Return the route visiting the given coordinates in order.
	GetRoute(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error)
}
