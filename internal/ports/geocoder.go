package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Contract for resolving a free-text location to coordinates.
type Geocoder interface {
	// Resolve a location string to a geocoded place.
	Geocode(ctx context.Context, location string) (domain.Place, error)
}
