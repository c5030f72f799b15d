package effects

import (
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// Rainbow sweeps hues across the matrix, with the row and column hue
// steps themselves swinging back and forth. It fades in over FadeIn after
// starting.
type Rainbow struct {
	pa     *pixarray.PixArray
	fadeIn time.Duration
	start  time.Time
	limiter
}

func NewRainbow(pa *pixarray.PixArray, fadeIn time.Duration) *Rainbow {
	return &Rainbow{
		pa:      pa,
		fadeIn:  fadeIn,
		limiter: limiter{interval: UpdateInterval},
	}
}

func (r *Rainbow) Init() {
	log.Infof("Starting Rainbow")
	r.start = time.Time{}
	r.pa.ClearMatrix()
	r.reset()
}

func (r *Rainbow) Paint(now time.Time, force bool) bool {
	if !r.ready(now, force) {
		return false
	}
	if r.start.IsZero() {
		r.start = now
	}
	d := now.Sub(r.start)
	ms := d.Milliseconds()
	m := r.pa.Matrix()
	yHueDelta32 := int32(cos16(uint16(ms*27))) * int32(350/m.Width())
	xHueDelta32 := int32(cos16(uint16(ms*39))) * int32(310/m.Height())
	scale := 256
	if d < r.fadeIn {
		scale = int(d * 256 / r.fadeIn)
	}
	r.drawFrame(uint8(ms/65536), int8(yHueDelta32/32768), int8(xHueDelta32/32768), scale)
	return true
}

func (r *Rainbow) drawFrame(startHue uint8, yHueDelta int8, xHueDelta int8, scale int) {
	m := r.pa.Matrix()
	lineStartHue := startHue
	for y := 0; y < m.Height(); y++ {
		lineStartHue += uint8(yHueDelta)
		pixelHue := lineStartHue
		for x := 0; x < m.Width(); x++ {
			pixelHue += uint8(xHueDelta)
			p := hsv(pixelHue)
			if scale < 256 {
				p = p.Scale(scale)
			}
			r.pa.SetXY(x, y, p)
		}
	}
}

func (r *Rainbow) Name() string {
	return "RAINBOW"
}
