package dto

import "encoding/json"

type TripPlanRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

type WaypointResponse struct {
	Label       string  `json:"label"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

type RouteLegResponse struct {
	FromLocation    string  `json:"from_location"`
	ToLocation      string  `json:"to_location"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RouteResponse struct {
	Waypoints          []WaypointResponse `json:"waypoints"`
	Geometry           json.RawMessage    `json:"geometry"`
	Legs               []RouteLegResponse `json:"legs"`
	TotalDistanceMiles float64            `json:"total_distance_miles"`
	TotalDurationHours float64            `json:"total_duration_hours"`
}

type DutyEventResponse struct {
	Time     float64 `json:"time"`
	Status   string  `json:"status"`
	Location string  `json:"location"`
	Remark   string  `json:"remark"`
}

type DayScheduleResponse struct {
	Day        int                 `json:"day"`
	DateOffset int                 `json:"date_offset"`
	Events     []DutyEventResponse `json:"events"`
	Totals     map[string]float64  `json:"totals"`
}

type DailyLogResponse struct {
	Day         int    `json:"day"`
	DateOffset  int    `json:"date_offset"`
	ImageBase64 string `json:"image_base64"`
}

type TripPlanResponse struct {
	Route    RouteResponse         `json:"route"`
	Schedule []DayScheduleResponse `json:"schedule"`
	Logs     []DailyLogResponse    `json:"logs"`
}
