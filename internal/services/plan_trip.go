package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

type PlanTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	StartDate        time.Time
}

// The complete result of planning one trip: resolved waypoints, the driving
// route, the day-by-day duty schedule, and one rendered log per day.
type TripPlan struct {
	Waypoints []domain.Waypoint
	Route     domain.Route
	Schedule  []domain.DaySchedule
	Logs      []domain.RenderedLog
}

// PlanTrip orchestrates geocoding, routing, duty-schedule simulation, and
// log rendering for one trip. It either returns a complete plan or an
// error; no partial results.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	renderer ports.LogRenderer,
	cfg ScheduleConfig,
) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	labels := []string{"Current Location", "Pickup", "Dropoff"}
	locations := []string{req.CurrentLocation, req.PickupLocation, req.DropoffLocation}

	waypoints := make([]domain.Waypoint, 0, len(locations))
	coords := make([]domain.Coordinates, 0, len(locations))
	for i, loc := range locations {
		place, err := geocoder.Geocode(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("plan trip: geocode %q: %w", loc, err)
		}
		waypoints = append(waypoints, domain.Waypoint{Label: labels[i], Place: place})
		coords = append(coords, place.Coordinates)
	}

	route, err := routes.GetRoute(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("plan trip: get route: %w", err)
	}
	if len(route.Legs) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"plan trip: route has %d legs for %d waypoints",
			len(route.Legs), len(waypoints),
		)
	}

	// Annotate legs with city names so remarks and log labels read as
	// places rather than coordinates.
	for i := range route.Legs {
		route.Legs[i].From = waypoints[i].Place.City
		route.Legs[i].To = waypoints[i+1].Place.City
	}

	tripLegs := make([]domain.TripLeg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		tripLegs = append(tripLegs, leg.ToTripLeg())
	}

	days, err := BuildSchedule(tripLegs, req.CurrentCycleUsed, cfg)
	if err != nil {
		return nil, fmt.Errorf("plan trip: build schedule: %w", err)
	}
	if len(days) == 0 {
		return nil, errors.New("plan trip: schedule produced no days")
	}

	current := waypoints[0].Place
	dropoff := waypoints[len(waypoints)-1].Place
	info := ports.TripInfo{
		DriverName:    "Driver",
		Carrier:       "Trip Tracker Inc.",
		MainOffice:    current.City,
		HomeTerminal:  current.City,
		TruckNumber:   "T-001",
		TrailerNumber: "TR-001",
		From:          current.City,
		To:            dropoff.City,
		TotalMiles:    int(math.Round(route.Miles())),
		StartDate:     req.StartDate,
	}

	logs := make([]domain.RenderedLog, 0, len(days))
	for _, day := range days {
		img, err := renderer.Render(day, info)
		if err != nil {
			return nil, fmt.Errorf("plan trip: render log for day %d: %w", day.Day, err)
		}
		logs = append(logs, domain.RenderedLog{
			Day:        day.Day,
			DateOffset: day.DateOffset,
			ImagePNG:   img,
		})
	}

	return &TripPlan{
		Waypoints: waypoints,
		Route:     route,
		Schedule:  days,
		Logs:      logs,
	}, nil
}
