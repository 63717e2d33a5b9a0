package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"trip-log-service/internal/adapters/geocode"
	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"
)

type TripHandler struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Renderer ports.LogRenderer
	Schedule services.ScheduleConfig
}

// Plan orchestrates geocoding, routing, HOS simulation, and log rendering
// for one trip request. Either a complete plan is returned or an error;
// never partial results.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripPlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		writeError(w, r, http.StatusBadRequest,
			"current_location, pickup_location, and dropoff_location are required")
		return
	}

	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > services.CycleLimitHours {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must be between 0 and 70")
		return
	}

	svcReq := services.PlanTripRequest{
		CurrentLocation:  current,
		PickupLocation:   pickup,
		DropoffLocation:  dropoff,
		CurrentCycleUsed: req.CurrentCycleUsed,
		StartDate:        time.Now(),
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Geocoder, h.Routes, h.Renderer, h.Schedule)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrLocationNotFound):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInvalidCycleValue):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInfeasibleLeg):
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "trip cannot be scheduled")
		default:
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "upstream trip planning failed")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

func toTripPlanResponse(plan *services.TripPlan) dto.TripPlanResponse {
	res := dto.TripPlanResponse{
		Route: dto.RouteResponse{
			Waypoints:          make([]dto.WaypointResponse, 0, len(plan.Waypoints)),
			Geometry:           plan.Route.Geometry,
			Legs:               make([]dto.RouteLegResponse, 0, len(plan.Route.Legs)),
			TotalDistanceMiles: round1(plan.Route.Miles()),
			TotalDurationHours: round2(plan.Route.Hours()),
		},
		Schedule: make([]dto.DayScheduleResponse, 0, len(plan.Schedule)),
		Logs:     make([]dto.DailyLogResponse, 0, len(plan.Logs)),
	}

	for _, wp := range plan.Waypoints {
		res.Route.Waypoints = append(res.Route.Waypoints, dto.WaypointResponse{
			Label:       wp.Label,
			Lat:         wp.Place.Coordinates.Lat,
			Lon:         wp.Place.Coordinates.Lon,
			DisplayName: wp.Place.City,
		})
	}
	for _, leg := range plan.Route.Legs {
		res.Route.Legs = append(res.Route.Legs, dto.RouteLegResponse{
			FromLocation:    leg.From,
			ToLocation:      leg.To,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
	}

	for _, day := range plan.Schedule {
		events := make([]dto.DutyEventResponse, 0, len(day.Events))
		for _, ev := range day.Events {
			events = append(events, dto.DutyEventResponse{
				Time:     round4(ev.Time),
				Status:   string(ev.Status),
				Location: ev.Location,
				Remark:   ev.Remark,
			})
		}

		totals := make(map[string]float64, len(day.Totals))
		for _, s := range domain.AllStatuses {
			totals[string(s)] = round2(day.Totals[s])
		}

		res.Schedule = append(res.Schedule, dto.DayScheduleResponse{
			Day:        day.Day,
			DateOffset: day.DateOffset,
			Events:     events,
			Totals:     totals,
		})
	}

	for _, dayLog := range plan.Logs {
		res.Logs = append(res.Logs, dto.DailyLogResponse{
			Day:         dayLog.Day,
			DateOffset:  dayLog.DateOffset,
			ImageBase64: base64PNG(dayLog.ImagePNG),
		})
	}

	return res
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
