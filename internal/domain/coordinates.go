package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// LonLat formats coordinates as "lon,lat" for routing API paths.
func (c Coordinates) LonLat() string { return fmt.Sprintf("%f,%f", c.Lon, c.Lat) }
