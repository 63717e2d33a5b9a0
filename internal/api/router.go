package api

import (
	"net/http"

	"trip-log-service/internal/api/handlers"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	renderer ports.LogRenderer,
	schedule services.ScheduleConfig,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Geocoder: geocoder,
		Routes:   routes,
		Renderer: renderer,
		Schedule: schedule,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips/plan", tripHandler.Plan)

	return loggingMiddleware(mux)
}
