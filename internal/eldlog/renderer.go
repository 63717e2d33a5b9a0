package eldlog

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

var (
	fontsOnce   sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		fontRegular, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		fontBold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func loadFace(size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return newFace(fontRegular, size)
}

// Renderer draws day schedules onto the blank log template. Rendering is
// pure: the same schedule and trip info always produce identical PNG
// bytes. Safe for concurrent use; each render works on its own copy of
// the template.
type Renderer struct {
	template image.Image

	faceSmall  font.Face // header values
	faceMed    font.Face // dates, mileage, summary labels
	faceBold   font.Face // circled total
	faceHours  font.Face // hours column
	faceRemark font.Face // rotated remark flags
}

// NewRenderer builds a renderer over the given template image. A nil
// template selects the built-in blank form.
func NewRenderer(template image.Image) (*Renderer, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("new renderer: parse fonts: %w", err)
	}
	if template == nil {
		template = BlankTemplate()
	}

	r := &Renderer{template: template}

	var err error
	if r.faceSmall, err = newFace(fontRegular, 7); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	if r.faceMed, err = newFace(fontRegular, 8); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	if r.faceBold, err = newFace(fontBold, 9); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	if r.faceHours, err = newFace(fontRegular, hoursSize); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	if r.faceRemark, err = newFace(fontRegular, remarkSize); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	return r, nil
}

// Render draws one day schedule onto the template and returns the encoded
// PNG.
func (r *Renderer) Render(day domain.DaySchedule, info ports.TripInfo) ([]byte, error) {
	dc := gg.NewContextForImage(r.template)

	r.drawHeader(dc, day, info)

	events := normalizeEvents(day.Events)
	if len(events) > 0 {
		r.drawGrid(dc, events)
		r.drawHoursColumn(dc, day.Totals)
		r.drawRemarkFlags(dc, events)
		r.drawBottomTotals(dc, day.Totals)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode log image: %w", err)
	}
	return buf.Bytes(), nil
}

// normalizeEvents ensures the drawn timeline starts at midnight.
func normalizeEvents(events []domain.DutyEvent) []domain.DutyEvent {
	if len(events) == 0 {
		return nil
	}
	if events[0].Time <= 0 {
		return events
	}

	out := make([]domain.DutyEvent, 0, len(events)+1)
	out = append(out, domain.DutyEvent{
		Status:   domain.StatusOffDuty,
		Location: events[0].Location,
	})
	return append(out, events...)
}

func statusRow(s domain.DutyStatus) domain.DutyStatus {
	if _, ok := rowY[s]; ok {
		return s
	}
	return domain.StatusOffDuty
}

// drawHeader fills in the date, locations, mileage, and carrier fields.
func (r *Renderer) drawHeader(dc *gg.Context, day domain.DaySchedule, info ports.TripInfo) {
	dc.SetRGB255(0, 0, 180)

	if !info.StartDate.IsZero() {
		date := info.StartDate.AddDate(0, 0, day.DateOffset)
		dc.SetFontFace(r.faceMed)
		dc.DrawString(fmt.Sprintf("%d", int(date.Month())), hdrDateMonthX, hdrDateY)
		dc.DrawString(fmt.Sprintf("%d", date.Day()), hdrDateDayX, hdrDateY)
		dc.DrawString(fmt.Sprintf("%d", date.Year()), hdrDateYearX, hdrDateY)
	}

	dc.SetFontFace(r.faceSmall)
	dc.DrawString(truncate(info.From, 25), hdrFromX, hdrFromToY)
	dc.DrawString(truncate(info.To, 25), hdrToX, hdrFromToY)

	dc.SetFontFace(r.faceMed)
	miles := fmt.Sprintf("%d", info.TotalMiles)
	dc.DrawString(miles, hdrMilesDrvX, hdrMilesY)
	dc.DrawString(miles, hdrMilesTotX, hdrMilesY)

	dc.SetFontFace(r.faceSmall)
	dc.DrawString(info.TruckNumber+" / "+info.TrailerNumber, hdrTruckX, hdrTruckY)
	dc.DrawString(truncate(info.Carrier, 35), hdrCarrierX, hdrCarrierY)
	dc.DrawString(truncate(info.MainOffice, 35), hdrCarrierX, hdrOfficeY)
	dc.DrawString(truncate(info.HomeTerminal, 35), hdrCarrierX, hdrTerminalY)
}

// drawGrid draws the horizontal status segments, the vertical connectors
// at each transition, and the transition marker dots.
func (r *Renderer) drawGrid(dc *gg.Context, events []domain.DutyEvent) {
	dc.SetLineWidth(lineWidth)

	for i, ev := range events {
		tEnd := 24.0
		if i+1 < len(events) {
			tEnd = events[i+1].Time
		}

		y := rowY[statusRow(ev.Status)]
		xStart := timeToX(ev.Time)
		xEnd := timeToX(tEnd)

		if xEnd > xStart {
			dc.SetRGB255(0, 0, 0)
			dc.DrawLine(xStart, y, xEnd, y)
			dc.Stroke()
		}

		if i > 0 {
			prevY := rowY[statusRow(events[i-1].Status)]
			if prevY != y {
				dc.SetRGB255(0, 0, 0)
				dc.DrawLine(xStart, prevY, xStart, y)
				dc.Stroke()

				dc.SetRGB255(180, 0, 0)
				dc.DrawCircle(xStart, prevY, dotRadius)
				dc.Fill()
				dc.DrawCircle(xStart, y, dotRadius)
				dc.Fill()
			}
		}
	}

	// Closing dot at midnight on the last active row.
	lastY := rowY[statusRow(events[len(events)-1].Status)]
	dc.SetRGB255(180, 0, 0)
	dc.DrawCircle(gridRight, lastY, dotRadius)
	dc.Fill()
}

// drawHoursColumn writes H:MM totals beside each status row.
func (r *Renderer) drawHoursColumn(dc *gg.Context, totals domain.DayTotals) {
	dc.SetRGB255(0, 0, 0)
	dc.SetFontFace(r.faceHours)
	for _, s := range domain.AllStatuses {
		dc.DrawString(fmtHours(totals[s]), hoursColX, rowY[s]+2)
	}
}

// drawRemarkFlags draws, for each status change carrying a remark or a new
// location, a drop-line into the remarks band, a tick at the exact time,
// and a rotated location/remark label. Labels closer than the minimum
// spacing to the previous label are suppressed to avoid collisions; the
// drop-line and tick are still drawn so the grid stays accurate.
func (r *Renderer) drawRemarkFlags(dc *gg.Context, events []domain.DutyEvent) {
	lastTextX := -1.0

	for i, ev := range events {
		var prevLoc string
		if i > 0 {
			prevLoc = events[i-1].Location
		}
		if ev.Remark == "" && (i == 0 || ev.Location == prevLoc) {
			continue
		}

		x := timeToX(ev.Time)

		dc.SetRGB255(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawLine(x, rowBottom[statusRow(ev.Status)], x, remarksBaseY)
		dc.Stroke()
		dc.DrawLine(x-3, remarksBaseY, x+3, remarksBaseY)
		dc.Stroke()

		if lastTextX >= 0 && x-lastTextX < remarkMinSpacing {
			continue
		}

		lines := wrapText(ev.Remark, remarkWrapChars)
		if loc := abbrevLocation(ev.Location); loc != "" {
			lines = append([]string{loc}, lines...)
		}
		if len(lines) == 0 {
			continue
		}

		r.drawRotatedLines(dc, lines, x, remarksBaseY+3)
		lastTextX = x
	}
}

// drawRotatedLines renders label lines rotated 90 degrees so they read top
// to bottom, with the block centred on the flag x position.
func (r *Renderer) drawRotatedLines(dc *gg.Context, lines []string, x, y float64) {
	anchorX := x - float64(len(lines))*remarkLineHeight/2

	dc.SetRGB255(0, 0, 0)
	dc.SetFontFace(r.faceRemark)
	dc.Push()
	dc.RotateAbout(gg.Radians(90), anchorX, y)
	for i, line := range lines {
		dc.DrawString(line, anchorX+2, y-2-float64(i)*remarkLineHeight)
	}
	dc.Pop()
}

// drawBottomTotals writes the driving / on-duty breakdown and the combined
// total inside a red circle.
func (r *Renderer) drawBottomTotals(dc *gg.Context, totals domain.DayTotals) {
	driving := totals[domain.StatusDriving]
	onDuty := totals[domain.StatusOnDuty]

	dc.SetRGB255(0, 0, 0)
	dc.SetFontFace(r.faceMed)
	dc.DrawString("Driving: "+fmtHours(driving), totalsDrvX, totalsY)
	dc.DrawString("On Duty (not driving): "+fmtHours(onDuty), totalsDutyX, totalsY)

	dc.SetFontFace(r.faceBold)
	totalStr := fmt.Sprintf("%.1f", driving+onDuty)
	dc.DrawString(totalStr, totalsSumX, totalsY)

	w, h := dc.MeasureString(totalStr)
	cx := totalsSumX + w/2
	cy := totalsY - h/2
	dc.SetRGB255(200, 0, 0)
	dc.SetLineWidth(circleWidth)
	dc.DrawEllipse(cx, cy, w/2+totalCirclePadX, h/2+totalCirclePadY)
	dc.Stroke()
}
