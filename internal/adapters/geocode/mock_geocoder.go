package geocode

import (
	"context"
	"fmt"

	"trip-log-service/internal/domain"
)

type MockGeocoder struct {
	m map[string]domain.Place
}

func NewMockGeocoder(places map[string]domain.Place) *MockGeocoder {
	return &MockGeocoder{m: places}
}

func (g *MockGeocoder) Geocode(ctx context.Context, location string) (domain.Place, error) {
	p, ok := g.m[location]
	if !ok {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", location, ErrLocationNotFound)
	}

	return p, nil
}
