package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/user/dns-switcher/internal/core"
)

// GetIcon returns the tray icon for the given status
func GetIcon(status core.Status) []byte {
	switch status {
	case core.StatusSuccess:
		return GreenIcon
	case core.StatusError:
		return RedIcon
	default:
		return YellowIcon
	}
}

// GenerateDotIcon renders a 32x32 PNG with an anti-aliased filled circle
// on a transparent background.
func GenerateDotIcon(cr, cg, cb byte) []byte {
	const size = 32
	const radius = 11.0
	const center = (size - 1) / 2.0

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			d := math.Sqrt(dx*dx+dy*dy) - radius
			var alpha float64
			switch {
			case d <= -0.5:
				alpha = 1
			case d < 0.5:
				alpha = 0.5 - d
			}
			if alpha > 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: cr, G: cg, B: cb, A: byte(alpha * 255)})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Pre-generated for startup speed
var (
	GreenIcon  = GenerateDotIcon(30, 200, 90)
	YellowIcon = GenerateDotIcon(240, 190, 30)
	RedIcon    = GenerateDotIcon(220, 55, 55)
)
