package domain

// Driver duty status, matching the four lines of a paper ELD log grid.
// The values double as the wire representation.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "off_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
)

// AllStatuses lists the duty statuses in log-sheet row order.
var AllStatuses = []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty}

// Valid reports whether s is one of the four duty statuses.
func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty:
		return true
	}
	return false
}

// A status change on the continuous trip timeline. Start is measured in
// hours since the driver's clock start on day one; the event runs until the
// next event's Start (or the end of the timeline).
type TimelineEvent struct {
	Start    float64
	Status   DutyStatus
	Location string
	Remark   string
}

// A status change within a single calendar day. Time is the time of day in
// fractional hours, 0.0 inclusive to 24.0 exclusive. The event runs until
// the next event's Time, or 24.0 for the last event of the day.
type DutyEvent struct {
	Time     float64
	Status   DutyStatus
	Location string
	Remark   string
}

// Hours spent in each duty status during one calendar day.
// The four values always sum to 24.0.
type DayTotals map[DutyStatus]float64

// Sum returns the total hours across all statuses.
func (t DayTotals) Sum() float64 {
	var s float64
	for _, v := range t {
		s += v
	}
	return s
}

// One calendar day of the trip schedule. Produced by the day splitter and
// immutable afterwards. Day is 1-based; DateOffset is Day - 1.
type DaySchedule struct {
	Day        int
	DateOffset int
	Events     []DutyEvent
	Totals     DayTotals
}

// A rendered ELD log sheet for one day, 1:1 with a DaySchedule.
type RenderedLog struct {
	Day        int
	DateOffset int
	ImagePNG   []byte
}
