package pixarray

import (
	"fmt"
	"strings"
)

// Guard is the logical index returned for coordinates outside the matrix.
// PixArray maps it onto a hidden slot, so it is always safe to read or
// write.
const Guard = -1

// Layout describes how the LED chain is wired through the matrix.
type Layout int

const (
	// Linear: every row runs left to right.
	Linear Layout = iota
	// LinearVertical: every column runs bottom to top, starting at the
	// rightmost column.
	LinearVertical
	// Serpentine: even rows run left to right, odd rows right to left.
	Serpentine
	// SerpentineVertical: columns alternate direction.
	SerpentineVertical
)

var StringLayouts map[string]Layout = map[string]Layout{
	"linear":              Linear,
	"linear-vertical":     LinearVertical,
	"serpentine":          Serpentine,
	"serpentine-vertical": SerpentineVertical,
}

func ParseLayout(s string) (Layout, error) {
	l, ok := StringLayouts[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown layout %q", s)
	}
	return l, nil
}

func (l Layout) String() string {
	for k, v := range StringLayouts {
		if v == l {
			return k
		}
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Matrix converts x/y coordinates (0,0 at the first LED of the chain's
// origin corner) into positions along the LED chain.
type Matrix struct {
	width  int
	height int
	layout Layout
}

func NewMatrix(width, height int, layout Layout) *Matrix {
	return &Matrix{width, height, layout}
}

func (m *Matrix) Width() int {
	return m.width
}

func (m *Matrix) Height() int {
	return m.height
}

func (m *Matrix) Count() int {
	return m.width * m.height
}

func (m *Matrix) Layout() Layout {
	return m.layout
}

// ToIndex does not check its arguments. Don't pass it coordinates outside
// the matrix; use ToIndexSafe for that.
func (m *Matrix) ToIndex(x, y int) int {
	switch m.layout {
	case LinearVertical:
		return m.height*(m.width-(x+1)) + y
	case Serpentine:
		if y&0x01 != 0 {
			// Odd rows run backwards
			return y*m.width + (m.width - 1 - x)
		}
		return y*m.width + x
	case SerpentineVertical:
		if x&0x01 != 0 {
			return m.height*(m.width-(x+1)) + y
		}
		return m.height*(m.width-x) - (y + 1)
	default:
		return y*m.width + x
	}
}

// ToIndexSafe is ToIndex, except that coordinates outside the matrix
// yield Guard.
func (m *Matrix) ToIndexSafe(x, y int) int {
	if x < 0 || x >= m.width {
		return Guard
	}
	if y < 0 || y >= m.height {
		return Guard
	}
	return m.ToIndex(x, y)
}

// Coords is the inverse of ToIndex. ok is false for indexes outside the
// matrix.
func (m *Matrix) Coords(i int) (x, y int, ok bool) {
	if i < 0 || i >= m.Count() {
		return 0, 0, false
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.ToIndex(x, y) == i {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
