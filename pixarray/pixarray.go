package pixarray

import (
	"fmt"
)

const (
	GRB = iota
	BRG
	BGR
	GBR
	RGB
	RBG
)

var StringOrders map[string]int = map[string]int{
	"GRB": GRB,
	"BRG": BRG,
	"BGR": BGR,
	"GBR": GBR,
	"RGB": RGB,
	"RBG": RBG,
}

// Byte positions of G, R and B within a pixel for each order.
var offsets map[int][]int = map[int][]int{
	GRB: {0, 1, 2},
	BRG: {2, 1, 0},
	BGR: {1, 2, 0},
	GBR: {0, 2, 1},
	RGB: {1, 0, 2},
	RBG: {2, 0, 1},
}

func abs(i int) int {
	if i >= 0 {
		return i
	}
	return -i
}

type Pixel struct {
	R int
	G int
	B int
}

func (p Pixel) String() string {
	return fmt.Sprintf("%02x%02x%02x", p.R, p.G, p.B)
}

// IsBlack reports whether all channels are off.
func (p Pixel) IsBlack() bool {
	return p.R <= 0 && p.G <= 0 && p.B <= 0
}

// Add returns the channel-wise sum of p and o, saturating at 255.
func (p Pixel) Add(o Pixel) Pixel {
	return Pixel{sat(p.R + o.R), sat(p.G + o.G), sat(p.B + o.B)}
}

// Scale returns p with each channel multiplied by n/256.
func (p Pixel) Scale(n int) Pixel {
	return Pixel{p.R * n >> 8, p.G * n >> 8, p.B * n >> 8}
}

func sat(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

// encode writes p into b (3 bytes) in the given channel order.
func encode(b []byte, order int, p Pixel) {
	o := offsets[order]
	b[o[0]] = byte(p.G)
	b[o[1]] = byte(p.R)
	b[o[2]] = byte(p.B)
}

// decode is the inverse of encode.
func decode(b []byte, order int) Pixel {
	o := offsets[order]
	return Pixel{R: int(b[o[1]]), G: int(b[o[0]]), B: int(b[o[2]])}
}

// PixArray is the frame buffer shared by all effects. The matrix comes
// first, followed by the minute ring and the second ring. Storage carries
// one extra slot in front of the visible pixels: logical index Guard (and
// any other index outside the buffer) lands there, so stray writes are
// invisible and stray reads return whatever was last written to it.
type PixArray struct {
	m          *Matrix
	numMinutes int
	numSeconds int
	pixels     []Pixel
	scratch    []Pixel
	brightness int
	leds       LEDStrip
}

func NewPixArray(m *Matrix, numMinutes int, numSeconds int, leds LEDStrip) *PixArray {
	n := m.Count() + numMinutes + numSeconds
	return &PixArray{
		m:          m,
		numMinutes: numMinutes,
		numSeconds: numSeconds,
		pixels:     make([]Pixel, n+1),
		scratch:    make([]Pixel, n),
		brightness: 255,
		leds:       leds,
	}
}

func (pa *PixArray) Matrix() *Matrix {
	return pa.m
}

// NumPixels is the number of visible pixels, matrix and rings together.
func (pa *PixArray) NumPixels() int {
	return len(pa.pixels) - 1
}

// MinuteRing returns the logical offset and length of the minute LEDs.
func (pa *PixArray) MinuteRing() (int, int) {
	return pa.m.Count(), pa.numMinutes
}

// SecondRing returns the logical offset and length of the second LEDs.
func (pa *PixArray) SecondRing() (int, int) {
	return pa.m.Count() + pa.numMinutes, pa.numSeconds
}

func (pa *PixArray) MaxPerChannel() int {
	return pa.leds.MaxPerChannel()
}

// SetBrightness sets a global scale (0-255) applied when the frame is written.
func (pa *PixArray) SetBrightness(b int) {
	pa.brightness = sat(b)
}

func (pa *PixArray) Brightness() int {
	return pa.brightness
}

func (pa *PixArray) slot(i int) int {
	if i < 0 || i >= len(pa.pixels)-1 {
		return 0
	}
	return i + 1
}

func (pa *PixArray) Write() error {
	vis := pa.pixels[1:]
	if pa.brightness == 255 {
		return pa.leds.Write(vis)
	}
	for i, p := range vis {
		pa.scratch[i] = Pixel{p.R * pa.brightness / 255, p.G * pa.brightness / 255, p.B * pa.brightness / 255}
	}
	return pa.leds.Write(pa.scratch)
}

func (pa *PixArray) GetPixels() []Pixel {
	p := make([]Pixel, len(pa.pixels)-1)
	copy(p, pa.pixels[1:])
	return p
}

func (pa *PixArray) GetPixel(i int) Pixel {
	return pa.pixels[pa.slot(i)]
}

func (pa *PixArray) SetOne(i int, p Pixel) {
	pa.pixels[pa.slot(i)] = p
}

// AddOne blends p onto pixel i, saturating each channel.
func (pa *PixArray) AddOne(i int, p Pixel) {
	s := pa.slot(i)
	pa.pixels[s] = pa.pixels[s].Add(p)
}

func (pa *PixArray) GetXY(x, y int) Pixel {
	return pa.GetPixel(pa.m.ToIndexSafe(x, y))
}

func (pa *PixArray) SetXY(x, y int, p Pixel) {
	pa.SetOne(pa.m.ToIndexSafe(x, y), p)
}

func (pa *PixArray) SetAll(p Pixel) {
	for i := 1; i < len(pa.pixels); i++ {
		pa.pixels[i] = p
	}
}

// SetRange sets n pixels starting at logical index start.
func (pa *PixArray) SetRange(start, n int, p Pixel) {
	for i := start; i < start+n; i++ {
		pa.SetOne(i, p)
	}
}

func (pa *PixArray) ClearRange(start, n int) {
	pa.SetRange(start, n, Pixel{})
}

func (pa *PixArray) ClearMatrix() {
	pa.ClearRange(0, pa.m.Count())
}

// Clear blanks every visible pixel. The guard slot is left alone.
func (pa *PixArray) Clear() {
	pa.SetAll(Pixel{})
}

// SetPerChanAlternate spreads num/div of each channel's pixels in
// [start, start+n) to p2 and the rest to p1, as evenly as possible. Used to
// show fractional levels between two adjacent colours.
func (pa *PixArray) SetPerChanAlternate(start, n int, num Pixel, div int, p1 Pixel, p2 Pixel) {
	totSet := Pixel{}
	shouldSet := Pixel{}
	p := Pixel{}
	for i := start; i < start+n; i++ {
		shouldSet.R += num.R
		e1 := abs((totSet.R + div) - shouldSet.R)
		e2 := abs(totSet.R - shouldSet.R)
		if e1 < e2 {
			totSet.R += div
			p.R = p2.R
		} else {
			p.R = p1.R
		}
		shouldSet.G += num.G
		e1 = abs((totSet.G + div) - shouldSet.G)
		e2 = abs(totSet.G - shouldSet.G)
		if e1 < e2 {
			totSet.G += div
			p.G = p2.G
		} else {
			p.G = p1.G
		}
		shouldSet.B += num.B
		e1 = abs((totSet.B + div) - shouldSet.B)
		e2 = abs(totSet.B - shouldSet.B)
		if e1 < e2 {
			totSet.B += div
			p.B = p2.B
		} else {
			p.B = p1.B
		}
		pa.SetOne(i, p)
	}
}
