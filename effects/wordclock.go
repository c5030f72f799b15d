package effects

import (
	"math/rand"
	"time"

	"github.com/Jon-Bright/wordclock/clock"
	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// WordClock shows the time as words on the matrix, with optional minute
// and second rings after it in the chain.
type WordClock struct {
	pa      *pixarray.PixArray
	src     clock.Source
	cfg     ClockConfig
	rng     *rand.Rand
	palette *Palette
	limiter

	// RandomPaletteHourly swaps in a new random palette at the top of
	// every hour.
	RandomPaletteHourly bool
	// PerWordColor picks a separate colour for every word instead of one
	// colour per redraw.
	PerWordColor bool

	current     WordSet
	minuteColor pixarray.Pixel
	paletteHour int
	redraws     int

	// What the rings last showed, so jumps in time (missed ticks, clock
	// corrections) blank what's no longer valid. -1 when unknown.
	lastBlock  int
	lastLevel  int
	lastMinute int
	lastSecond int
}

// NewWordClock takes ring sizes from pa; only cfg's Dialect and
// SecondOffset are used.
func NewWordClock(pa *pixarray.PixArray, src clock.Source, cfg ClockConfig, seed int64) *WordClock {
	_, cfg.MinuteLEDs = pa.MinuteRing()
	_, cfg.SecondLEDs = pa.SecondRing()
	if cfg.SecondLEDs > 0 {
		cfg.SecondOffset %= cfg.SecondLEDs
	}
	rng := rand.New(rand.NewSource(seed))
	return &WordClock{
		pa:          pa,
		src:         src,
		cfg:         cfg,
		rng:         rng,
		palette:     paletteFromHex("rainbow", presets["rainbow"]),
		limiter:     limiter{interval: UpdateInterval},
		minuteColor: pixarray.Pixel{R: 0xFF, B: 0xFF},
		paletteHour: -1,
		lastBlock:   -1,
		lastLevel:   -1,
		lastMinute:  -1,
		lastSecond:  -1,
	}
}

func (w *WordClock) Init() {
	log.Infof("Starting WordClock, dialect %v", w.cfg.Dialect)
	off, n := w.pa.MinuteRing()
	w.pa.ClearRange(off, n)
	off, n = w.pa.SecondRing()
	w.pa.ClearRange(off, n)
	w.current = nil
	w.lastBlock, w.lastLevel = -1, -1
	w.lastMinute, w.lastSecond = -1, -1
	w.reset()
}

func (w *WordClock) SetPalette(p *Palette) {
	w.palette = p
}

func (w *WordClock) Palette() *Palette {
	return w.palette
}

// Current is the word set last drawn.
func (w *WordClock) Current() WordSet {
	return w.current
}

func (w *WordClock) randomColor() pixarray.Pixel {
	return w.palette.ColorAt(uint8(w.rng.Intn(255)))
}

func (w *WordClock) Paint(now time.Time, force bool) bool {
	if !w.ready(now, force) {
		return false
	}
	t, ok := w.src.Now()
	if !ok {
		return false
	}
	r := Translate(t, w.cfg)

	if r.Minute == 0 && w.RandomPaletteHourly && w.paletteHour != t.Hour {
		w.palette = RandomPalette(w.rng)
		w.paletteHour = t.Hour
		log.Debugf("New random palette for hour %d", t.Hour)
	}

	if force || !r.Words.Equal(w.current) {
		log.WithFields(log.Fields{"hour": t.Hour, "minute": r.Minute}).Debugf("Showing %q", r.Words)
		w.current = r.Words
		w.drawWords()
	}
	minute := t.Hour*60 + t.Minute
	w.updateMinutes(minute/5, r.MinuteLevel, force)
	w.updateSeconds(minute, r.SecondIndex)
	return true
}

func (w *WordClock) drawWords() {
	w.redraws++
	w.pa.ClearMatrix()
	c := w.randomColor()
	for _, word := range w.current {
		if w.PerWordColor {
			c = w.randomColor()
		}
		p := word.Position()
		for j := 0; j < p.Len; j++ {
			w.pa.SetXY(p.X+j, p.Y, c)
		}
	}
}

// updateMinutes lights level LEDs of the minute ring. block identifies the
// five-minute block being shown.
func (w *WordClock) updateMinutes(block, level int, force bool) {
	off, n := w.pa.MinuteRing()
	if n == 0 {
		return
	}
	if force || block != w.lastBlock {
		// New five-minute block: blank the ring and pick its colour
		w.pa.ClearRange(off, n)
		w.minuteColor = w.randomColor()
	} else if level < w.lastLevel {
		w.pa.ClearRange(off, n)
	}
	w.lastBlock, w.lastLevel = block, level
	for i := 0; i < level && i < n; i++ {
		w.pa.SetOne(off+i, w.minuteColor)
	}
}

// updateSeconds lights the second ring up to index last. minute is the
// minute of the day being shown.
func (w *WordClock) updateSeconds(minute, last int) {
	off, n := w.pa.SecondRing()
	if n == 0 {
		return
	}
	if minute != w.lastMinute || last < w.lastSecond {
		w.pa.ClearRange(off, n)
	}
	w.lastMinute, w.lastSecond = minute, last
	for i := 0; i <= last; i++ {
		c := w.palette.ColorAt(uint8(255 * i / n))
		w.pa.SetOne(off+(i+w.cfg.SecondOffset)%n, c)
	}
}

func (w *WordClock) Name() string {
	return "WORDCLOCK"
}
