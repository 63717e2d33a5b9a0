package services

import (
	"math"

	"trip-log-service/internal/domain"
)

const hoursPerDay = 24.0

// SplitIntoDays partitions a continuous timeline into calendar-day
// schedules. Events crossing a midnight boundary are split in two: one
// half ends the day and a duplicate opens the next day at 0.0. The final
// day is padded with off-duty so every day covers exactly 24 hours.
//
// startHour shifts the trip start to the driver's local clock: day one
// opens with off-duty from midnight until startHour.
func SplitIntoDays(timeline []domain.TimelineEvent, end float64, startHour float64) []domain.DaySchedule {
	events := timeline
	if startHour > timeEps {
		shifted := make([]domain.TimelineEvent, 0, len(timeline)+1)
		var loc string
		if len(timeline) > 0 {
			loc = timeline[0].Location
		}
		shifted = append(shifted, domain.TimelineEvent{Status: domain.StatusOffDuty, Location: loc})
		for _, ev := range timeline {
			ev.Start += startHour
			shifted = append(shifted, ev)
		}
		events = shifted
		end += startHour
	}
	if len(events) == 0 {
		events = []domain.TimelineEvent{{Status: domain.StatusOffDuty}}
	}

	numDays := int(math.Ceil((end - timeEps) / hoursPerDay))
	if numDays < 1 {
		numDays = 1
	}

	days := make([]domain.DaySchedule, numDays)
	for d := range days {
		days[d] = domain.DaySchedule{Day: d + 1, DateOffset: d}
	}

	for i, ev := range events {
		evEnd := end
		if i+1 < len(events) {
			evEnd = events[i+1].Start
		}
		if evEnd-ev.Start <= timeEps {
			continue
		}

		first := int((ev.Start + timeEps) / hoursPerDay)
		last := int((evEnd - timeEps) / hoursPerDay)
		if last >= numDays {
			last = numDays - 1
		}
		for d := first; d <= last; d++ {
			tod := math.Max(ev.Start-float64(d)*hoursPerDay, 0)
			days[d].Events = append(days[d].Events, domain.DutyEvent{
				Time:     tod,
				Status:   ev.Status,
				Location: ev.Location,
				Remark:   ev.Remark,
			})
		}
	}

	// Close out the final day with off-duty when the trip ends early.
	lastDay := &days[numDays-1]
	endTod := end - float64(numDays-1)*hoursPerDay
	if endTod < hoursPerDay-timeEps {
		n := len(lastDay.Events)
		if n == 0 {
			lastDay.Events = append(lastDay.Events, domain.DutyEvent{Status: domain.StatusOffDuty})
		} else if lastDay.Events[n-1].Status != domain.StatusOffDuty {
			lastDay.Events = append(lastDay.Events, domain.DutyEvent{
				Time:     endTod,
				Status:   domain.StatusOffDuty,
				Location: lastDay.Events[n-1].Location,
			})
		}
	}

	for d := range days {
		days[d].Totals = ComputeTotals(days[d].Events)
	}
	return days
}

// ComputeTotals sums per-status hours for one day's events. Each event runs
// from its time until the next event's time, or midnight for the last.
func ComputeTotals(events []domain.DutyEvent) domain.DayTotals {
	totals := domain.DayTotals{
		domain.StatusOffDuty:      0,
		domain.StatusSleeperBerth: 0,
		domain.StatusDriving:      0,
		domain.StatusOnDuty:       0,
	}
	for i, ev := range events {
		endT := hoursPerDay
		if i+1 < len(events) {
			endT = events[i+1].Time
		}
		if d := endT - ev.Time; d > 0 {
			totals[ev.Status] += d
		}
	}
	return totals
}
