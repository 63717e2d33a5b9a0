package routing

import (
	"context"
	"errors"

	"trip-log-service/internal/domain"
)

type MockRouteProvider struct {
	Route domain.Route
	Err   error
}

func NewMockRouteProvider(route domain.Route) *MockRouteProvider {
	return &MockRouteProvider{Route: route}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error) {
	if p.Err != nil {
		return domain.Route{}, p.Err
	}
	if len(waypoints) < 2 {
		return domain.Route{}, errors.New("mock route: at least two waypoints are required")
	}

	return p.Route, nil
}
