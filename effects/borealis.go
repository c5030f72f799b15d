package effects

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

const (
	// WaveCount is the number of waves alive at any time.
	WaveCount = 8
	// WaveSpeedFactor scales every wave's speed.
	WaveSpeedFactor = 3
	// DefaultBorealisSeed gives the same show every time the mode starts.
	DefaultBorealisSeed = 11
)

// WeightPreset biases which aurora colours new waves get.
type WeightPreset int

const (
	WeightEqual WeightPreset = iota
	WeightWarm
	WeightCool
)

var StringWeightPresets map[string]WeightPreset = map[string]WeightPreset{
	"equal": WeightEqual,
	"warm":  WeightWarm,
	"cool":  WeightCool,
}

func ParseWeightPreset(s string) (WeightPreset, error) {
	w, ok := StringWeightPresets[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown aurora preset %q", s)
	}
	return w, nil
}

var auroraColors = [5]pixarray.Pixel{
	{17, 177, 13},   // greenish
	{148, 242, 5},   // greenish
	{25, 173, 121},  // turquoise
	{250, 77, 127},  // pink
	{171, 101, 221}, // purple
}

var auroraWeights = [3][5]int{
	WeightEqual: {10, 10, 10, 10, 10},
	WeightWarm:  {2, 2, 2, 6, 6},
	WeightCool:  {6, 6, 6, 2, 2},
}

type wave struct {
	ttl       int
	age       int
	color     int
	alpha     float64
	halfWidth float64
	center    float64
	left      bool
	speed     float64
}

// weightedColor draws a palette index with probability proportional to
// its weight.
func weightedColor(r *rand.Rand, weights [5]int) int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	v := r.Intn(sum)
	for i, w := range weights {
		v -= w
		if v < 0 {
			return i
		}
	}
	return 0
}

func newWave(r *rand.Rand, n int, weights [5]int) wave {
	lo := float64(n) / 10
	hi := float64(n) / 3
	return wave{
		ttl:       500 + r.Intn(1001),
		color:     weightedColor(r, weights),
		alpha:     float64(50+r.Intn(51)) / 100,
		halfWidth: lo + r.Float64()*(hi-lo),
		center:    r.Float64() * float64(n),
		left:      r.Intn(2) == 0,
		speed:     (0.10 + r.Float64()*0.20) * WaveSpeedFactor,
	}
}

// update advances the wave one tick and reports whether it is still alive.
func (w *wave) update(n int) bool {
	if w.left {
		w.center -= w.speed
	} else {
		w.center += w.speed
	}
	w.age++
	if w.age > w.ttl {
		return false
	}
	if w.left {
		return w.center+w.halfWidth >= 0
	}
	return w.center-w.halfWidth <= float64(n)
}

// envelope rises linearly to 1 at half the wave's life and falls back to 0.
func (w *wave) envelope() float64 {
	a := float64(w.age) / float64(w.ttl)
	if a < 0.5 {
		return a * 2
	}
	return (1 - a) * 2
}

// contribution is the colour this wave adds at position i, if any.
func (w *wave) contribution(i int) (pixarray.Pixel, bool) {
	d := math.Abs(float64(i) - w.center)
	if d > w.halfWidth {
		return pixarray.Pixel{}, false
	}
	b := (1 - d/w.halfWidth) * w.envelope() * w.alpha
	c := auroraColors[w.color]
	return pixarray.Pixel{
		R: int(float64(c.R) * b),
		G: int(float64(c.G) * b),
		B: int(float64(c.B) * b),
	}, true
}

// Borealis drifts overlapping waves of aurora colours along the LED chain.
type Borealis struct {
	pa      *pixarray.PixArray
	n       int
	seed    int64
	weights [5]int
	rng     *rand.Rand
	waves   []wave
	limiter
}

func NewBorealis(pa *pixarray.PixArray, preset WeightPreset, seed int64) *Borealis {
	b := Borealis{
		pa:      pa,
		n:       pa.Matrix().Count(),
		seed:    seed,
		weights: auroraWeights[preset],
		limiter: limiter{interval: UpdateInterval},
	}
	b.spawnAll()
	return &b
}

func (b *Borealis) spawnAll() {
	b.rng = rand.New(rand.NewSource(b.seed))
	b.waves = make([]wave, WaveCount)
	for i := range b.waves {
		b.waves[i] = newWave(b.rng, b.n, b.weights)
	}
}

func (b *Borealis) Init() {
	log.Infof("Starting Borealis, seed %d", b.seed)
	b.spawnAll()
	b.pa.ClearMatrix()
	b.reset()
}

func (b *Borealis) Paint(now time.Time, force bool) bool {
	if !b.ready(now, force) {
		return false
	}
	for i := range b.waves {
		if !b.waves[i].update(b.n) {
			b.waves[i] = newWave(b.rng, b.n, b.weights)
		}
	}
	for i := 0; i < b.n; i++ {
		var mixed pixarray.Pixel
		for j := range b.waves {
			c, ok := b.waves[j].contribution(i)
			if ok {
				mixed = mixed.Add(c)
			}
		}
		b.pa.SetOne(i, mixed)
	}
	return true
}

func (b *Borealis) Name() string {
	return "BOREALIS"
}
