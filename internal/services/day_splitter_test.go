package services

import (
	"testing"

	"trip-log-service/internal/domain"
)

func TestSplitEmptyTimeline(t *testing.T) {
	days := SplitIntoDays(nil, 0, 0)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if len(days[0].Events) != 1 || days[0].Events[0].Status != domain.StatusOffDuty {
		t.Fatalf("expected a single off-duty event, got %+v", days[0].Events)
	}
	if got := days[0].Totals[domain.StatusOffDuty]; !almostEqual(got, 24.0) {
		t.Fatalf("off-duty total = %v, want 24.0", got)
	}
}

func TestSplitEventSpanningMidnight(t *testing.T) {
	timeline := []domain.TimelineEvent{
		{Start: 0, Status: domain.StatusDriving},
	}

	days := SplitIntoDays(timeline, 30, 0)

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if got := days[0].Totals[domain.StatusDriving]; !almostEqual(got, 24.0) {
		t.Fatalf("day 1 driving = %v, want 24.0", got)
	}
	// The spanning event reappears at hour 0 of the next day.
	if days[1].Events[0].Time != 0 || days[1].Events[0].Status != domain.StatusDriving {
		t.Fatalf("day 2 first event = %+v, want driving at 0", days[1].Events[0])
	}
	if got := days[1].Totals[domain.StatusDriving]; !almostEqual(got, 6.0) {
		t.Fatalf("day 2 driving = %v, want 6.0", got)
	}
	if got := days[1].Totals[domain.StatusOffDuty]; !almostEqual(got, 18.0) {
		t.Fatalf("day 2 off-duty pad = %v, want 18.0", got)
	}
}

func TestSplitFinalDayPaddedOffDuty(t *testing.T) {
	timeline := []domain.TimelineEvent{
		{Start: 0, Status: domain.StatusOnDuty},
		{Start: 1, Status: domain.StatusDriving},
	}

	days := SplitIntoDays(timeline, 5, 0)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	last := days[0].Events[len(days[0].Events)-1]
	if last.Status != domain.StatusOffDuty || !almostEqual(last.Time, 5.0) {
		t.Fatalf("last event = %+v, want off-duty at 5.0", last)
	}
	if got := days[0].Totals[domain.StatusOffDuty]; !almostEqual(got, 19.0) {
		t.Fatalf("off-duty total = %v, want 19.0", got)
	}
}

func TestSplitNoPadWhenAlreadyOffDuty(t *testing.T) {
	timeline := []domain.TimelineEvent{
		{Start: 0, Status: domain.StatusDriving},
		{Start: 2, Status: domain.StatusOffDuty},
	}

	days := SplitIntoDays(timeline, 3, 0)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if n := len(days[0].Events); n != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", n, days[0].Events)
	}
	if got := days[0].Totals[domain.StatusOffDuty]; !almostEqual(got, 22.0) {
		t.Fatalf("off-duty total = %v, want 22.0", got)
	}
}

func TestSplitStartHourPrefix(t *testing.T) {
	timeline := []domain.TimelineEvent{
		{Start: 0, Status: domain.StatusOnDuty},
	}

	days := SplitIntoDays(timeline, 1, 6.0)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	events := days[0].Events
	if events[0].Status != domain.StatusOffDuty || events[0].Time != 0 {
		t.Fatalf("expected off-duty prefix at 0, got %+v", events[0])
	}
	if events[1].Status != domain.StatusOnDuty || !almostEqual(events[1].Time, 6.0) {
		t.Fatalf("expected on-duty at 6.0, got %+v", events[1])
	}
	if got := days[0].Totals[domain.StatusOnDuty]; !almostEqual(got, 1.0) {
		t.Fatalf("on-duty total = %v, want 1.0", got)
	}
}

// Concatenating the per-day slices (dropping boundary continuations and the
// trailing off-duty pad) must reproduce the continuous timeline exactly.
func TestSplitRoundTrip(t *testing.T) {
	legs := []domain.TripLeg{
		{From: "El Paso, TX", To: "Houston, TX", DriveHours: 13.5, DistanceMiles: 740},
	}
	cfg := testConfig()
	cfg.StartHour = 0

	timeline, end, err := BuildTimeline(legs, 5, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := SplitIntoDays(timeline, end, 0)
	if len(days) < 2 {
		t.Fatalf("expected a multi-day schedule, got %d days", len(days))
	}

	var rebuilt []domain.TimelineEvent
	for _, day := range days {
		for _, ev := range day.Events {
			abs := ev.Time + float64(day.DateOffset)*hoursPerDay
			if abs >= end-1e-9 {
				continue // trailing pad
			}
			if len(rebuilt) > 0 && rebuilt[len(rebuilt)-1].Status == ev.Status {
				continue // continuation of a spanning event
			}
			rebuilt = append(rebuilt, domain.TimelineEvent{
				Start:    abs,
				Status:   ev.Status,
				Location: ev.Location,
				Remark:   ev.Remark,
			})
		}
	}

	if len(rebuilt) != len(timeline) {
		t.Fatalf("rebuilt %d events, want %d", len(rebuilt), len(timeline))
	}
	for i, ev := range timeline {
		got := rebuilt[i]
		if !almostEqual(got.Start, ev.Start) || got.Status != ev.Status ||
			got.Location != ev.Location || got.Remark != ev.Remark {
			t.Fatalf("event %d = %+v, want %+v", i, got, ev)
		}
	}
}

func TestComputeTotalsLastEventExtendsToMidnight(t *testing.T) {
	events := []domain.DutyEvent{
		{Time: 0, Status: domain.StatusOffDuty},
		{Time: 8, Status: domain.StatusDriving},
		{Time: 12, Status: domain.StatusSleeperBerth},
	}

	totals := ComputeTotals(events)

	if got := totals[domain.StatusOffDuty]; !almostEqual(got, 8.0) {
		t.Fatalf("off-duty = %v, want 8.0", got)
	}
	if got := totals[domain.StatusDriving]; !almostEqual(got, 4.0) {
		t.Fatalf("driving = %v, want 4.0", got)
	}
	if got := totals[domain.StatusSleeperBerth]; !almostEqual(got, 12.0) {
		t.Fatalf("sleeper = %v, want 12.0", got)
	}
}
