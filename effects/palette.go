package effects

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is a 16-entry gradient sampled with an 8-bit index. Entries are
// spaced 16 apart and the gradient wraps from the last entry back to the
// first.
type Palette struct {
	name    string
	entries [16]pixarray.Pixel
}

func NewPalette(name string, entries [16]pixarray.Pixel) *Palette {
	return &Palette{name, entries}
}

func paletteFromHex(name string, hex [16]uint32) *Palette {
	p := Palette{name: name}
	for i, h := range hex {
		p.entries[i] = pixarray.Pixel{R: int(h >> 16 & 0xFF), G: int(h >> 8 & 0xFF), B: int(h & 0xFF)}
	}
	return &p
}

// RandomPalette builds a palette of pleasant random colours.
func RandomPalette(r *rand.Rand) *Palette {
	p := Palette{name: "random"}
	for i, c := range colorful.FastHappyPaletteWithRand(16, r) {
		p.entries[i] = toPixel(c)
	}
	return &p
}

func (p *Palette) Name() string {
	return p.name
}

func (p *Palette) Entry(i int) pixarray.Pixel {
	return p.entries[i&0x0F]
}

// ColorAt interpolates linearly between the two entries around index.
func (p *Palette) ColorAt(index uint8) pixarray.Pixel {
	hi := index >> 4
	lo := index & 0x0F
	c1 := p.entries[hi]
	if lo == 0 {
		return c1
	}
	c2 := p.entries[(hi+1)&0x0F]
	return toPixel(toColor(c1).BlendRgb(toColor(c2), float64(lo)/16))
}

var presets = map[string][16]uint32{
	"rainbow": {
		0xFF0000, 0xD52A00, 0xAB5500, 0xAB7F00, 0xABAB00, 0x56D500, 0x00FF00, 0x00D52A,
		0x00AB55, 0x0056AA, 0x0000FF, 0x2A00D5, 0x5500AB, 0x7F0081, 0xAB0055, 0xD5002B,
	},
	"party": {
		0x5500AB, 0x84007C, 0xB5004B, 0xE5001B, 0xE81700, 0xB84700, 0xAB7700, 0xABAB00,
		0xAB5500, 0xDD2200, 0xF2000E, 0xC2003E, 0x8F0071, 0x5F00A1, 0x2F00D0, 0x0007F9,
	},
	"forest": {
		0x006400, 0x006400, 0x556B2F, 0x006400, 0x008000, 0x228B22, 0x6B8E23, 0x008000,
		0x2E8B57, 0x66CDAA, 0x32CD32, 0x9ACD32, 0x90EE90, 0x7CFC00, 0x66CDAA, 0x228B22,
	},
	"ocean": {
		0x191970, 0x00008B, 0x191970, 0x000080, 0x00008B, 0x0000CD, 0x2E8B57, 0x008080,
		0x5F9EA0, 0x0000FF, 0x008B8B, 0x6495ED, 0x7FFFD4, 0x2E8B57, 0x00FFFF, 0x87CEFA,
	},
	"lava": {
		0x000000, 0x800000, 0x000000, 0x800000, 0x8B0000, 0x8B0000, 0x800000, 0x8B0000,
		0x8B0000, 0x8B0000, 0xFF0000, 0xFFA500, 0xFFFFFF, 0xFFA500, 0xFF0000, 0x8B0000,
	},
	"cloud": {
		0x0000FF, 0x00008B, 0x00008B, 0x00008B, 0x00008B, 0x00008B, 0x00008B, 0x00008B,
		0x0000FF, 0x00008B, 0x87CEEB, 0x87CEEB, 0xADD8E6, 0xFFFFFF, 0xADD8E6, 0x87CEEB,
	},
	"heat": {
		0x000000, 0x330000, 0x660000, 0x990000, 0xCC0000, 0xFF0000, 0xFF3300, 0xFF6600,
		0xFF9900, 0xFFCC00, 0xFFFF00, 0xFFFF33, 0xFFFF66, 0xFFFF99, 0xFFFFCC, 0xFFFFFF,
	},
}

// PaletteNames lists the preset names accepted by PaletteByName, plus
// "random".
func PaletteNames() []string {
	n := []string{"random"}
	for k := range presets {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// PaletteByName returns a preset palette, or a fresh random one for
// "random".
func PaletteByName(name string, r *rand.Rand) (*Palette, error) {
	name = strings.ToLower(name)
	if name == "random" {
		return RandomPalette(r), nil
	}
	h, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return paletteFromHex(name, h), nil
}
