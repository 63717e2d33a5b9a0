package ports

import (
	"time"

	"trip-log-service/internal/domain"
)

// Metadata written into the header of every rendered log sheet.
type TripInfo struct {
	DriverName    string
	Carrier       string
	MainOffice    string
	HomeTerminal  string
	TruckNumber   string
	TrailerNumber string
	From          string
	To            string
	TotalMiles    int
	StartDate     time.Time
}

// Contract for rendering one day schedule onto the ELD log template.
type LogRenderer interface {
	// Render a day schedule as an encoded PNG image.
	Render(day domain.DaySchedule, info TripInfo) ([]byte, error)
}
