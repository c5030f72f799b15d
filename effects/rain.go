package effects

import (
	"math/rand"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

const RainInterval = 100 * time.Millisecond

var (
	rainHead  = pixarray.Pixel{R: 175, G: 255, B: 175}
	rainTrail = pixarray.Pixel{R: 27, G: 130, B: 39}
)

// Rain drops bright heads from the top row down to row 0, each leaving a
// fading green trail.
type Rain struct {
	pa  *pixarray.PixArray
	rng *rand.Rand
	limiter
}

func NewRain(pa *pixarray.PixArray, seed int64) *Rain {
	return &Rain{
		pa:      pa,
		rng:     rand.New(rand.NewSource(seed)),
		limiter: limiter{interval: RainInterval},
	}
}

func (r *Rain) Init() {
	log.Infof("Starting Rain")
	r.pa.ClearMatrix()
	r.reset()
}

func (r *Rain) Paint(now time.Time, force bool) bool {
	if !r.ready(now, force) {
		return false
	}
	m := r.pa.Matrix()
	// Bottom row first, so a head moved down isn't moved again this pass
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if r.pa.GetXY(x, y) == rainHead {
				r.pa.SetXY(x, y, rainTrail)
				if y > 0 {
					r.pa.SetXY(x, y-1, rainHead)
				}
			}
		}
	}
	for i := 0; i < m.Count(); i++ {
		p := r.pa.GetPixel(i)
		if p.G != 255 {
			r.pa.SetOne(i, p.Scale(192))
		}
	}
	r.pa.SetXY(r.rng.Intn(m.Width()), m.Height()-1, rainHead)
	return true
}

func (r *Rain) Name() string {
	return "RAIN"
}
