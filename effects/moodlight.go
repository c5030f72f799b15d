package effects

import (
	"math"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// fade takes a run of pixels from their current colours to dest over
// fadeTime. When every pixel starts out the same, in-between levels are
// dithered across the run so the average moves smoothly even where a
// channel only has a few steps to go.
type fade struct {
	fadeTime time.Duration
	dest     pixarray.Pixel
	offs     int
	startPix []pixarray.Pixel
	diffs    []pixarray.Pixel
	allSame  bool
	start    time.Time
}

func newFade(pa *pixarray.PixArray, offs, n int, fadeTime time.Duration, dest pixarray.Pixel, now time.Time) *fade {
	f := fade{
		fadeTime: fadeTime,
		dest:     dest,
		offs:     offs,
		startPix: make([]pixarray.Pixel, n),
		diffs:    make([]pixarray.Pixel, n),
		allSame:  true,
		start:    now,
	}
	var maxdiff pixarray.Pixel
	for i := range f.startPix {
		v := pa.GetPixel(offs + i)
		f.startPix[i] = v
		f.diffs[i] = pixarray.Pixel{R: dest.R - v.R, G: dest.G - v.G, B: dest.B - v.B}
		if abs(f.diffs[i].R) > maxdiff.R {
			maxdiff.R = abs(f.diffs[i].R)
		}
		if abs(f.diffs[i].G) > maxdiff.G {
			maxdiff.G = abs(f.diffs[i].G)
		}
		if abs(f.diffs[i].B) > maxdiff.B {
			maxdiff.B = abs(f.diffs[i].B)
		}
		if i > 0 && f.startPix[i-1] != v {
			f.allSame = false
		}
	}
	log.Debugf("Fade to %v over %v, md.R %d, md.G %d, md.B %d, all-same %v", dest, fadeTime, maxdiff.R, maxdiff.G, maxdiff.B, f.allSame)
	return &f
}

// between splits a fractional level into the two whole levels around it
// and how many of n pixels should get the upper one.
func between(level float64, n int) (lo, hi, num int) {
	fl := math.Floor(level)
	lo = int(fl)
	return lo, lo + 1, round((level - fl) * float64(n))
}

// step draws the fade at time now and reports whether it has finished.
func (f *fade) step(pa *pixarray.PixArray, now time.Time) bool {
	n := len(f.startPix)
	pct := float64(now.Sub(f.start)) / float64(f.fadeTime)
	if f.fadeTime <= 0 || pct >= 1.0 {
		pa.SetRange(f.offs, n, f.dest)
		return true
	}
	if f.allSame {
		s := f.startPix[0]
		d := f.diffs[0]
		var lo, hi, num pixarray.Pixel
		lo.R, hi.R, num.R = between(float64(s.R)+float64(d.R)*pct, n)
		lo.G, hi.G, num.G = between(float64(s.G)+float64(d.G)*pct, n)
		lo.B, hi.B, num.B = between(float64(s.B)+float64(d.B)*pct, n)
		pa.SetPerChanAlternate(f.offs, n, num, n, lo, hi)
		return false
	}
	for i, v := range f.startPix {
		pa.SetOne(f.offs+i, pixarray.Pixel{
			R: v.R + int(float64(f.diffs[i].R)*pct),
			G: v.G + int(float64(f.diffs[i].G)*pct),
			B: v.B + int(float64(f.diffs[i].B)*pct),
		})
	}
	return false
}

// MoodLight fills the matrix with one colour, fading there from whatever
// was showing.
type MoodLight struct {
	pa       *pixarray.PixArray
	color    pixarray.Pixel
	fadeTime time.Duration
	fade     *fade
	done     bool
	limiter
}

func NewMoodLight(pa *pixarray.PixArray, color pixarray.Pixel, fadeTime time.Duration) *MoodLight {
	return &MoodLight{
		pa:       pa,
		color:    color,
		fadeTime: fadeTime,
		limiter:  limiter{interval: UpdateInterval},
	}
}

func (ml *MoodLight) Color() pixarray.Pixel {
	return ml.color
}

// SetColor starts a new fade from the current frame towards p.
func (ml *MoodLight) SetColor(p pixarray.Pixel) {
	ml.color = p
	ml.fade = nil
	ml.done = false
}

func (ml *MoodLight) Init() {
	log.Infof("Starting MoodLight, color %v", ml.color)
	ml.pa.ClearMatrix()
	ml.fade = nil
	ml.done = false
	ml.reset()
}

func (ml *MoodLight) Paint(now time.Time, force bool) bool {
	if !ml.ready(now, force) {
		return false
	}
	if ml.fade == nil {
		ml.fade = newFade(ml.pa, 0, ml.pa.Matrix().Count(), ml.fadeTime, ml.color, now)
	}
	if ml.done && !force {
		return false
	}
	ml.done = ml.fade.step(ml.pa, now)
	return true
}

func (ml *MoodLight) Name() string {
	return "MOODLIGHT"
}
