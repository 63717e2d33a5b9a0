package domain

import "encoding/json"

// One drive segment of the computed route, annotated with the endpoint
// city names after geocoding.
type RouteLeg struct {
	From            string
	To              string
	DistanceMeters  float64
	DurationSeconds float64
}

// A computed driving route over the trip waypoints. Geometry is the raw
// GeoJSON LineString from the routing service, passed through untouched
// for the map view.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        json.RawMessage
	Legs            []RouteLeg
}

// A drive segment in engine units (hours and miles). Immutable input to
// the duty schedule engine, supplied in trip order.
type TripLeg struct {
	From          string
	To            string
	DriveHours    float64
	DistanceMiles float64
}

const (
	metersPerMile  = 1609.34
	secondsPerHour = 3600.0
)

// ToTripLeg converts routing-service units to engine units.
func (l RouteLeg) ToTripLeg() TripLeg {
	return TripLeg{
		From:          l.From,
		To:            l.To,
		DriveHours:    l.DurationSeconds / secondsPerHour,
		DistanceMiles: l.DistanceMeters / metersPerMile,
	}
}

// Miles converts the route's total distance to miles.
func (r Route) Miles() float64 { return r.DistanceMeters / metersPerMile }

// Hours converts the route's total duration to hours.
func (r Route) Hours() float64 { return r.DurationSeconds / secondsPerHour }
