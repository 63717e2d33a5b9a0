package eldlog

import (
	"fmt"
	"strings"

	"trip-log-service/internal/domain"
)

// Grid geometry of the log template. These values reproduce the paper form
// pixel-for-pixel and are a fixed external contract, not tuning knobs.
const (
	gridLeft  = 56.0  // x pixel for midnight (hour 0)
	gridWidth = 435.0 // pixels spanning 24 hours
	gridRight = gridLeft + gridWidth

	templateWidth  = 513
	templateHeight = 518
)

// Duty-status row centre Y positions.
var rowY = map[domain.DutyStatus]float64{
	domain.StatusOffDuty:      192,
	domain.StatusSleeperBerth: 209,
	domain.StatusDriving:      226,
	domain.StatusOnDuty:       243,
}

// Bottom edge of each duty-status row (start of remark drop-lines).
var rowBottom = map[domain.DutyStatus]float64{
	domain.StatusOffDuty:      201,
	domain.StatusSleeperBerth: 218,
	domain.StatusDriving:      235,
	domain.StatusOnDuty:       252,
}

const (
	gridTop = 184.0

	lineWidth   = 2.0
	dotRadius   = 3.0
	circleWidth = 2.0

	// Header field positions.
	hdrDateY      = 14.0
	hdrDateMonthX = 182.0
	hdrDateDayX   = 223.0
	hdrDateYearX  = 255.0
	hdrFromToY    = 44.0
	hdrFromX      = 90.0
	hdrToX        = 278.0
	hdrMilesY     = 79.0
	hdrMilesDrvX  = 85.0
	hdrMilesTotX  = 155.0
	hdrTruckX     = 63.0
	hdrTruckY     = 112.0
	hdrCarrierX   = 234.0
	hdrCarrierY   = 75.0
	hdrOfficeY    = 95.0
	hdrTerminalY  = 116.0

	// Hours column to the right of the grid.
	hoursColX  = 493.0
	hoursSize  = 6.0
	remarkSize = 5.0

	// Remarks section below the grid.
	remarksBaseY     = 255.0
	remarkLineHeight = 8.0
	remarkMinSpacing = 20.0
	remarkWrapChars  = 10

	// Bottom summary row.
	totalsY         = 352.0
	totalsDrvX      = 60.0
	totalsDutyX     = 160.0
	totalsSumX      = 295.0
	totalCirclePadX = 8.0
	totalCirclePadY = 5.0
)

// timeToX converts fractional hours (0-24) to an x pixel on the grid.
func timeToX(hour float64) float64 {
	return gridLeft + (hour/24.0)*gridWidth
}

// fmtHours formats a decimal hour value as H:MM (e.g. 11.5 -> "11:30").
func fmtHours(h float64) string {
	hrs := int(h)
	mins := int((h-float64(hrs))*60 + 0.5)
	if mins >= 60 {
		hrs++
		mins -= 60
	}
	return fmt.Sprintf("%d:%02d", hrs, mins)
}

// US state name -> 2-letter abbreviation, used to shorten location labels.
var stateAbbrevs = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY", "District of Columbia": "DC",
}

var stateCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stateAbbrevs))
	for _, code := range stateAbbrevs {
		m[code] = struct{}{}
	}
	return m
}()

// abbrevLocation shortens a location string to "City, ST", dropping any
// county segment. Without a recognizable state the city alone is returned,
// truncated to 15 characters.
func abbrevLocation(text string) string {
	if text == "" {
		return text
	}
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city := parts[0]
	for i := len(parts) - 1; i >= 1; i-- {
		if code, ok := stateAbbrevs[parts[i]]; ok {
			return city + ", " + code
		}
		if _, ok := stateCodes[parts[i]]; ok {
			return city + ", " + parts[i]
		}
	}

	if len(city) > 15 {
		return city[:15]
	}
	return city
}

// wrapText word-wraps text at the given width, keeping long single words
// intact rather than breaking mid-word.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// truncate shortens text to max characters, appending an ellipsis.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-1] + "…"
}
