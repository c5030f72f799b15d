package effects

import (
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// ScanBar sweeps an anti-aliased bar along the chain, moving a fraction of
// a pixel per update. Positions are in sixteenths of a pixel.
type ScanBar struct {
	pa      *pixarray.PixArray
	width   int
	delta16 int
	hue     uint8
	pos16   int
	limiter
}

func NewScanBar(pa *pixarray.PixArray, width int, delta16 int, hue uint8) *ScanBar {
	return &ScanBar{
		pa:      pa,
		width:   width,
		delta16: delta16,
		hue:     hue,
		limiter: limiter{interval: UpdateInterval},
	}
}

func (s *ScanBar) SetHue(hue uint8) {
	s.hue = hue
}

func (s *ScanBar) Init() {
	log.Infof("Starting ScanBar, width %d", s.width)
	s.pos16 = 0
	s.pa.ClearMatrix()
	s.reset()
}

func (s *ScanBar) Paint(now time.Time, force bool) bool {
	if !s.ready(now, force) {
		return false
	}
	end := s.pa.Matrix().Count() * 16
	s.pos16 += s.delta16
	if s.pos16 >= end {
		s.pos16 -= end
	}
	s.pa.ClearMatrix()
	s.drawBar(hsv(s.hue))
	return true
}

// barLevels returns the first pixel covered by a bar of width pixels at
// pos16 and the brightness of each of the width+1 pixels it touches.
func barLevels(pos16, width int) (int, []int) {
	first := 255 - (pos16&0x0F)*16
	levels := make([]int, width+1)
	for n := range levels {
		switch n {
		case 0:
			levels[n] = first
		case width:
			levels[n] = 255 - first
		default:
			levels[n] = 255
		}
	}
	return pos16 / 16, levels
}

func (s *ScanBar) drawBar(c pixarray.Pixel) {
	count := s.pa.Matrix().Count()
	i, levels := barLevels(s.pos16, s.width)
	for _, l := range levels {
		if i >= count {
			i = 0
		}
		s.pa.AddOne(i, c.Scale(l))
		i++
	}
}

func (s *ScanBar) Name() string {
	return "SCANBAR"
}
