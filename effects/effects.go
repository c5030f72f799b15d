package effects

import (
	"math"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// UpdateInterval is the default repaint budget: effects redraw at most 20
// times a second however often they're asked to paint.
const UpdateInterval = 50 * time.Millisecond

// Effect is one animation painting into the shared PixArray.
//
// Init prepares the effect to become active and clears whatever part of
// the frame it owns. Paint draws the effect for time now and reports
// whether the frame changed. Called more often than the effect's update
// interval, Paint does nothing and returns false, unless force is set.
type Effect interface {
	Init()
	Paint(now time.Time, force bool) bool
	Name() string
}

// PaletteSetter is implemented by effects that take their colours from a
// Palette.
type PaletteSetter interface {
	SetPalette(p *Palette)
}

// limiter decides whether a rate-limited effect is due to paint.
type limiter struct {
	interval time.Duration
	last     time.Time
}

func (l *limiter) ready(now time.Time, force bool) bool {
	if force || l.last.IsZero() || now.Sub(l.last) >= l.interval {
		l.last = now
		return true
	}
	return false
}

func (l *limiter) reset() {
	l.last = time.Time{}
}

func abs(i int) int {
	if i >= 0 {
		return i
	}
	return -i
}

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func toColor(p pixarray.Pixel) colorful.Color {
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}

func toPixel(c colorful.Color) pixarray.Pixel {
	r, g, b := c.Clamped().RGB255()
	return pixarray.Pixel{R: int(r), G: int(g), B: int(b)}
}

// hsv returns the fully saturated, full brightness colour for an 8-bit hue
// (0-255 covers the whole wheel).
func hsv(hue uint8) pixarray.Pixel {
	return toPixel(colorful.Hsv(float64(hue)*360/256, 1, 1))
}

// cos16 is cosine over a 16-bit angle (65536 is a full turn), scaled to
// +/-32767.
func cos16(theta uint16) int16 {
	return int16(math.Cos(float64(theta)*2*math.Pi/65536) * 32767)
}
