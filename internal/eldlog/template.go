package eldlog

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
)

// LoadTemplate reads the blank log form from a PNG file.
func LoadTemplate(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load log template %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode log template %q: %w", path, err)
	}
	return img, nil
}

// BlankTemplate draws a blank daily log form matching the scanned paper
// template's geometry: the 24-hour grid with its four duty-status rows,
// hour ticks, row labels, and header field labels. It lets the service run
// without shipping a binary asset; a scanned form supplied via
// configuration takes precedence.
func BlankTemplate() image.Image {
	dc := gg.NewContext(templateWidth, templateHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB255(120, 120, 120)
	dc.SetLineWidth(1)

	// Header field underlines and labels.
	face, err := loadFace(7)
	if err == nil {
		dc.SetFontFace(face)
	}
	dc.DrawString("Driver's Daily Log", 200, 10)
	dc.DrawString("(month)", 172, 28)
	dc.DrawString("(day)", 215, 28)
	dc.DrawString("(year)", 247, 28)
	dc.DrawString("From:", 60, 44)
	dc.DrawString("To:", 255, 44)
	dc.DrawString("Total Miles Driving", 60, 68)
	dc.DrawString("Total Mileage Today", 140, 68)
	dc.DrawString("Truck/Trailer No.", 60, 100)
	dc.DrawString("Carrier:", 234, 63)
	dc.DrawString("Main Office:", 234, 83)
	dc.DrawString("Home Terminal:", 234, 104)
	for _, y := range []float64{19, 50, 86, 119} {
		dc.DrawLine(170, y, 280, y)
		dc.Stroke()
	}

	// 24-hour grid.
	dc.SetRGB255(60, 60, 60)
	for _, y := range []float64{gridTop, 201, 218, 235, 252} {
		dc.DrawLine(gridLeft, y, gridRight, y)
		dc.Stroke()
	}
	for h := 0; h <= 24; h++ {
		x := timeToX(float64(h))
		dc.DrawLine(x, gridTop, x, 252)
		dc.Stroke()
	}

	// Row labels.
	dc.DrawString("Off Duty", 8, 194)
	dc.DrawString("Sleeper", 8, 211)
	dc.DrawString("Driving", 8, 228)
	dc.DrawString("On Duty", 8, 245)

	dc.DrawString("Remarks", 8, 263)

	return dc.Image()
}
