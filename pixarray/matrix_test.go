package pixarray

import (
	"testing"
)

func TestToIndex(t *testing.T) {
	tests := []struct {
		layout Layout
		x, y   int
		want   int
	}{
		{Linear, 0, 0, 0},
		{Linear, 10, 0, 10},
		{Linear, 0, 1, 11},
		{Linear, 10, 9, 109},
		{LinearVertical, 10, 0, 0},
		{LinearVertical, 10, 9, 9},
		{LinearVertical, 9, 0, 10},
		{LinearVertical, 0, 9, 109},
		{Serpentine, 0, 0, 0},
		{Serpentine, 10, 0, 10},
		{Serpentine, 10, 1, 11},
		{Serpentine, 0, 1, 21},
		{Serpentine, 0, 2, 22},
		{SerpentineVertical, 0, 9, 100},
		{SerpentineVertical, 0, 0, 109},
		{SerpentineVertical, 1, 0, 90},
		{SerpentineVertical, 1, 9, 99},
		{SerpentineVertical, 10, 9, 0},
	}
	for _, test := range tests {
		m := NewMatrix(11, 10, test.layout)
		got := m.ToIndex(test.x, test.y)
		if got != test.want {
			t.Errorf("%v (%d,%d): got: %d, want: %d", test.layout, test.x, test.y, got, test.want)
		}
	}
}

func TestLayoutsAreBijective(t *testing.T) {
	for _, l := range StringLayouts {
		for _, dims := range [][2]int{{11, 10}, {10, 11}, {1, 1}, {4, 3}, {16, 16}} {
			m := NewMatrix(dims[0], dims[1], l)
			seen := make([]bool, m.Count())
			for y := 0; y < m.Height(); y++ {
				for x := 0; x < m.Width(); x++ {
					i := m.ToIndex(x, y)
					if i < 0 || i >= m.Count() {
						t.Errorf("%v %v (%d,%d): index %d out of range", l, dims, x, y, i)
						continue
					}
					if seen[i] {
						t.Errorf("%v %v (%d,%d): index %d used twice", l, dims, x, y, i)
					}
					seen[i] = true
					cx, cy, ok := m.Coords(i)
					if !ok || cx != x || cy != y {
						t.Errorf("%v %v: Coords(%d) = (%d,%d,%v), want (%d,%d,true)", l, dims, i, cx, cy, ok, x, y)
					}
				}
			}
		}
	}
}

func TestToIndexSafe(t *testing.T) {
	m := NewMatrix(11, 10, Serpentine)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {11, 0}, {0, 10}, {-100, 100}} {
		if got := m.ToIndexSafe(c[0], c[1]); got != Guard {
			t.Errorf("(%d,%d): got: %d, want: Guard", c[0], c[1], got)
		}
	}
	if got := m.ToIndexSafe(3, 1); got != m.ToIndex(3, 1) {
		t.Errorf("In-range mismatch, got: %d, want: %d", got, m.ToIndex(3, 1))
	}
	if _, _, ok := m.Coords(110); ok {
		t.Errorf("Coords(110) should be out of range")
	}
}

func TestParseLayout(t *testing.T) {
	for s, want := range StringLayouts {
		got, err := ParseLayout(s)
		if err != nil || got != want {
			t.Errorf("ParseLayout(%q) = %v, %v, want %v", s, got, err, want)
		}
		if got.String() != s {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), s)
		}
	}
	_, err := ParseLayout("zigzag")
	if err == nil {
		t.Errorf("Unknown layout accepted")
	}
}
