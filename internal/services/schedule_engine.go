package services

import (
	"errors"
	"fmt"
	"math"

	"trip-log-service/internal/domain"
)

// FMCSA hours-of-service limits for property-carrying drivers.
const (
	DriveLimitHours = 11.0 // max driving per shift
	DutyWindowHours = 14.0 // max shift span before a rest, breaks included
	BreakAfterHours = 8.0  // cumulative driving before a mandatory break
	BreakHours      = 0.5
	RestHours       = 10.0 // minimum rest between shifts
	RestartHours    = 34.0 // off-duty period that resets the cycle
	CycleLimitHours = 70.0 // rolling cycle budget
)

const (
	timeEps        = 1e-6
	maxEngineSteps = 100000
)

var (
	// current_cycle_used outside [0, 70].
	ErrInvalidCycleValue = errors.New("current cycle hours must be between 0 and 70")
	// The simulation could not make forward progress. With automatic
	// breaks, rests, and restarts this indicates an internal invariant
	// violation rather than a plannable-but-long trip.
	ErrInfeasibleLeg = errors.New("leg cannot be scheduled within hours-of-service limits")
)

// Fixed activity durations used by the simulation. The regulation does not
// prescribe these, so they are configuration rather than constants.
type ScheduleConfig struct {
	PreTripHours  float64 // pre-trip inspection at the start of each shift
	PostTripHours float64 // post-trip inspection at trip end; 0 disables
	LoadingHours  float64 // loading/unloading block at pickup and dropoff
	FuelingHours  float64 // fuel stop duration
	FuelingMiles  float64 // miles between fuel stops; <= 0 disables
	StartHour     float64 // local clock hour the driver starts on day one
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		PreTripHours:  0.5,
		PostTripHours: 0.5,
		LoadingHours:  1.0,
		FuelingHours:  0.25,
		FuelingMiles:  500,
		StartHour:     6.0,
	}
}

// Running counters for the rolling limits. All four are advanced together
// by the engine's chunked time steps, so two limits hitting at the same
// instant are observed in a single consistent state.
type cycleState struct {
	driveSinceBreak float64
	driveThisShift  float64
	windowElapsed   float64
	cycleRemaining  float64
}

type engine struct {
	cfg            ScheduleConfig
	t              float64 // hours since trip start
	timeline       []domain.TimelineEvent
	state          cycleState
	loc            string
	milesSinceFuel float64
	steps          int
}

// BuildSchedule simulates the trip under hours-of-service rules and returns
// the calendar-day schedules covering it.
func BuildSchedule(legs []domain.TripLeg, currentCycleUsed float64, cfg ScheduleConfig) ([]domain.DaySchedule, error) {
	timeline, end, err := BuildTimeline(legs, currentCycleUsed, cfg)
	if err != nil {
		return nil, err
	}
	return SplitIntoDays(timeline, end, cfg.StartHour), nil
}

// BuildTimeline runs the duty simulation and returns the continuous event
// timeline plus its end time, both in hours since trip start. The timeline
// has no zero-duration events and no consecutive events with equal status.
func BuildTimeline(legs []domain.TripLeg, currentCycleUsed float64, cfg ScheduleConfig) ([]domain.TimelineEvent, float64, error) {
	if currentCycleUsed < 0 || currentCycleUsed > CycleLimitHours {
		return nil, 0, ErrInvalidCycleValue
	}
	if len(legs) == 0 {
		return nil, 0, errors.New("build timeline: at least one leg is required")
	}

	e := &engine{
		cfg:   cfg,
		state: cycleState{cycleRemaining: CycleLimitHours - currentCycleUsed},
		loc:   legs[0].From,
	}

	if err := e.onDuty(cfg.PreTripHours, e.loc, "Pre-trip inspection"); err != nil {
		return nil, 0, err
	}

	for i, leg := range legs {
		if err := e.drive(leg); err != nil {
			return nil, 0, err
		}

		remark := "Loading/Unloading"
		switch {
		case i == len(legs)-1:
			remark = "Dropoff/Unloading"
		case i == 0:
			remark = "Pickup/Loading"
		}
		if err := e.onDuty(cfg.LoadingHours, leg.To, remark); err != nil {
			return nil, 0, err
		}
	}

	if cfg.PostTripHours > 0 {
		if err := e.onDuty(cfg.PostTripHours, e.loc, "Post-trip inspection"); err != nil {
			return nil, 0, err
		}
	}

	return e.timeline, e.t, nil
}

// emit records a status change at the current time. Same-status successors
// are merged and a zero-duration predecessor is replaced, so the timeline
// never carries no-op transitions.
func (e *engine) emit(status domain.DutyStatus, loc, remark string) {
	if n := len(e.timeline); n > 0 {
		last := &e.timeline[n-1]
		if e.t-last.Start < timeEps {
			if n > 1 && e.timeline[n-2].Status == status {
				e.timeline = e.timeline[:n-1]
				return
			}
			last.Status, last.Location, last.Remark = status, loc, remark
			return
		}
		if last.Status == status {
			return
		}
	}
	e.timeline = append(e.timeline, domain.TimelineEvent{
		Start:    e.t,
		Status:   status,
		Location: loc,
		Remark:   remark,
	})
}

func (e *engine) tick() error {
	e.steps++
	if e.steps > maxEngineSteps {
		return ErrInfeasibleLeg
	}
	return nil
}

// rest inserts the 10-hour inter-shift rest and clears all shift counters.
// The cycle budget is unaffected.
func (e *engine) rest() {
	e.emit(domain.StatusSleeperBerth, e.loc, "10-hour rest")
	e.t += RestHours
	e.state.driveSinceBreak = 0
	e.state.driveThisShift = 0
	e.state.windowElapsed = 0
}

// restart inserts the 34-hour off-duty restart and resets the cycle budget
// along with all shift counters.
func (e *engine) restart() {
	e.emit(domain.StatusOffDuty, e.loc, "34-hour restart")
	e.t += RestartHours
	e.state = cycleState{cycleRemaining: CycleLimitHours}
}

// resumeShift starts a new shift after a rest or restart with the pre-trip
// inspection block.
func (e *engine) resumeShift() error {
	return e.onDuty(e.cfg.PreTripHours, e.loc, "Pre-trip inspection")
}

// onDuty performs an on-duty (not driving) block. It consumes the duty
// window and the cycle budget but not the driving counters, splitting the
// block when a limit lands inside it.
func (e *engine) onDuty(hours float64, loc, remark string) error {
	for hours > timeEps {
		if err := e.tick(); err != nil {
			return err
		}

		if e.state.cycleRemaining <= timeEps {
			e.restart()
			continue
		}
		if e.state.windowElapsed >= DutyWindowHours-timeEps {
			e.rest()
			continue
		}

		chunk := math.Min(hours, e.state.cycleRemaining)
		chunk = math.Min(chunk, DutyWindowHours-e.state.windowElapsed)

		e.emit(domain.StatusOnDuty, loc, remark)
		e.t += chunk
		e.state.windowElapsed += chunk
		e.state.cycleRemaining -= chunk
		hours -= chunk
	}
	return nil
}

// drive advances through one leg's driving time, splitting the driving
// event at every limit: 30-minute break after 8 h driving, 10-hour rest at
// the 11 h / 14 h caps, 34-hour restart when the cycle budget runs out,
// and fuel stops by accumulated mileage.
func (e *engine) drive(leg domain.TripLeg) error {
	remaining := leg.DriveHours

	var speed float64
	if leg.DriveHours > 0 {
		speed = leg.DistanceMiles / leg.DriveHours
	}

	e.loc = leg.From
	for remaining > timeEps {
		if err := e.tick(); err != nil {
			return err
		}

		if e.state.cycleRemaining <= timeEps {
			e.restart()
			if err := e.resumeShift(); err != nil {
				return err
			}
			continue
		}
		if e.state.driveThisShift >= DriveLimitHours-timeEps ||
			e.state.windowElapsed >= DutyWindowHours-timeEps {
			e.rest()
			if err := e.resumeShift(); err != nil {
				return err
			}
			continue
		}
		if e.state.driveSinceBreak >= BreakAfterHours-timeEps {
			e.emit(domain.StatusOffDuty, e.loc, "30-minute break")
			e.t += BreakHours
			// The break pauses driving but the 14-hour window keeps
			// running: it is a wall-clock span, not an on-duty sum.
			e.state.windowElapsed += BreakHours
			e.state.driveSinceBreak = 0
			continue
		}

		chunk := remaining
		chunk = math.Min(chunk, DriveLimitHours-e.state.driveThisShift)
		chunk = math.Min(chunk, DutyWindowHours-e.state.windowElapsed)
		chunk = math.Min(chunk, BreakAfterHours-e.state.driveSinceBreak)
		chunk = math.Min(chunk, e.state.cycleRemaining)
		if e.cfg.FuelingMiles > 0 && speed > 0 {
			if toFuel := (e.cfg.FuelingMiles - e.milesSinceFuel) / speed; toFuel < chunk {
				chunk = toFuel
			}
		}
		if chunk <= timeEps {
			return fmt.Errorf("drive %s -> %s: %w", leg.From, leg.To, ErrInfeasibleLeg)
		}

		e.emit(domain.StatusDriving, e.loc, "")
		e.t += chunk
		e.state.driveThisShift += chunk
		e.state.driveSinceBreak += chunk
		e.state.windowElapsed += chunk
		e.state.cycleRemaining -= chunk
		remaining -= chunk
		e.milesSinceFuel += chunk * speed

		if remaining <= timeEps {
			break
		}
		if e.cfg.FuelingMiles > 0 && e.milesSinceFuel >= e.cfg.FuelingMiles-0.1 {
			if err := e.onDuty(e.cfg.FuelingHours, e.loc, "Fuel stop"); err != nil {
				return err
			}
			e.milesSinceFuel = 0
		}
	}

	e.loc = leg.To
	return nil
}
