package domain

import "strings"

// A geocoded location. City is the shortened "City, Region" form used for
// schedule remarks and log-sheet labels; DisplayName is the full geocoder
// result.
type Place struct {
	Coordinates Coordinates
	DisplayName string
	City        string
}

// CityFromDisplayName shortens a full geocoder display name to its
// "City, Region" prefix. Every Place.City is derived through this one
// function so cached and freshly geocoded places carry identical labels.
func CityFromDisplayName(displayName string) string {
	parts := strings.SplitN(displayName, ",", 3)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 2 {
		return parts[0] + ", " + parts[1]
	}
	if len(parts) == 1 && parts[0] != "" {
		return parts[0]
	}
	return displayName
}

// A named point on the trip route (current location, pickup, dropoff).
type Waypoint struct {
	Label string
	Place Place
}
