package eldlog

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

func testDay() domain.DaySchedule {
	return domain.DaySchedule{
		Day:        1,
		DateOffset: 0,
		Events: []domain.DutyEvent{
			{Time: 0, Status: domain.StatusOffDuty, Location: "Chicago, Cook County"},
			{Time: 6, Status: domain.StatusOnDuty, Location: "Chicago, Cook County", Remark: "Pre-trip inspection"},
			{Time: 6.5, Status: domain.StatusDriving, Location: "Chicago, Cook County"},
			{Time: 8, Status: domain.StatusOnDuty, Location: "Milwaukee, Milwaukee County", Remark: "Pickup/Loading"},
			{Time: 9, Status: domain.StatusDriving, Location: "Milwaukee, Milwaukee County"},
			{Time: 14, Status: domain.StatusSleeperBerth, Location: "Eau Claire, Eau Claire County", Remark: "10-hour rest"},
		},
		Totals: domain.DayTotals{
			domain.StatusOffDuty:      6,
			domain.StatusSleeperBerth: 10,
			domain.StatusDriving:      6.5,
			domain.StatusOnDuty:       1.5,
		},
	}
}

func testInfo() ports.TripInfo {
	return ports.TripInfo{
		DriverName:    "Driver",
		Carrier:       "Trip Tracker Inc.",
		MainOffice:    "Chicago, Cook County",
		HomeTerminal:  "Chicago, Cook County",
		TruckNumber:   "T-001",
		TrailerNumber: "TR-001",
		From:          "Chicago, Cook County",
		To:            "Minneapolis, Hennepin County",
		TotalMiles:    500,
		StartDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesTemplateSizedPNG(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	data, err := r.Render(testDay(), testInfo())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty image")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 513 || b.Dy() != 518 {
		t.Fatalf("image size = %dx%d, want 513x518", b.Dx(), b.Dy())
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	first, err := r.Render(testDay(), testInfo())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(testDay(), testInfo())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("two renders of the same day produced different bytes")
	}
}

func TestRenderDependsOnSchedule(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	busy, err := r.Render(testDay(), testInfo())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	idle := domain.DaySchedule{
		Day: 1,
		Events: []domain.DutyEvent{
			{Time: 0, Status: domain.StatusOffDuty},
		},
		Totals: domain.DayTotals{domain.StatusOffDuty: 24},
	}
	quiet, err := r.Render(idle, testInfo())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if bytes.Equal(busy, quiet) {
		t.Fatal("different schedules rendered identical images")
	}
}

func TestNormalizeEventsPrefixesOffDuty(t *testing.T) {
	events := []domain.DutyEvent{
		{Time: 6, Status: domain.StatusDriving},
	}

	got := normalizeEvents(events)

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Time != 0 || got[0].Status != domain.StatusOffDuty {
		t.Fatalf("expected off-duty prefix at 0, got %+v", got[0])
	}

	already := []domain.DutyEvent{{Time: 0, Status: domain.StatusOnDuty}}
	if got := normalizeEvents(already); len(got) != 1 {
		t.Fatalf("expected untouched events, got %+v", got)
	}
}

func TestTimeToX(t *testing.T) {
	cases := []struct {
		hour float64
		want float64
	}{
		{0, 56},
		{12, 273.5},
		{24, 491},
	}
	for _, tc := range cases {
		if got := timeToX(tc.hour); got != tc.want {
			t.Fatalf("timeToX(%v) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestFmtHours(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{2, "2:00"},
		{6.5, "6:30"},
		{11.25, "11:15"},
		{24, "24:00"},
	}
	for _, tc := range cases {
		if got := fmtHours(tc.in); got != tc.want {
			t.Fatalf("fmtHours(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbbrevLocation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Chicago, Cook County, Illinois", "Chicago, IL"},
		{"Milwaukee, Wisconsin", "Milwaukee, WI"},
		{"Springfield", "Springfield"},
		{"Reno, Washoe County, NV", "Reno, NV"},
		{"Truth or Consequences Junction", "Truth or Conseq"},
	}
	for _, tc := range cases {
		if got := abbrevLocation(tc.in); got != tc.want {
			t.Fatalf("abbrevLocation(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("Fuel stop Amarillo TX", 10)
	want := []string{"Fuel stop", "Amarillo", "TX"}
	if len(lines) != len(want) {
		t.Fatalf("wrapText = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// A word longer than the width stays intact on its own line.
	if got := wrapText("Pickup/Loading", 10); len(got) != 1 || got[0] != "Pickup/Loading" {
		t.Fatalf("wrapText(Pickup/Loading) = %v", got)
	}

	if got := wrapText("short", 10); len(got) != 1 || got[0] != "short" {
		t.Fatalf("wrapText(short) = %v", got)
	}
}
