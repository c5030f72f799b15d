package pixarray

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal previews the frame in a terminal: the matrix with y=0 at the
// bottom, then one row per LED ring underneath it. Each LED is two cells
// wide so the matrix keeps roughly square proportions.
type Terminal struct {
	s       tcell.Screen
	m       *Matrix
	rings   []int
	coordsX []int
	coordsY []int
}

func NewTerminal(m *Matrix, rings ...int) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("couldn't create screen: %w", err)
	}
	return newTerminal(s, m, rings...)
}

func newTerminal(s tcell.Screen, m *Matrix, rings ...int) (*Terminal, error) {
	err := s.Init()
	if err != nil {
		return nil, fmt.Errorf("couldn't init screen: %w", err)
	}
	t := Terminal{
		s:       s,
		m:       m,
		rings:   rings,
		coordsX: make([]int, m.Count()),
		coordsY: make([]int, m.Count()),
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			i := m.ToIndex(x, y)
			t.coordsX[i] = x
			t.coordsY[i] = y
		}
	}
	s.Clear()
	return &t, nil
}

func (t *Terminal) MaxPerChannel() int {
	return 255
}

func (t *Terminal) set(col, row int, p Pixel) {
	st := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(p.R), int32(p.G), int32(p.B)))
	t.s.SetContent(col*2, row, ' ', nil, st)
	t.s.SetContent(col*2+1, row, ' ', nil, st)
}

func (t *Terminal) Write(pixels []Pixel) error {
	n := t.m.Count()
	for _, r := range t.rings {
		n += r
	}
	if len(pixels) != n {
		return fmt.Errorf("got %d pixels, terminal shows %d", len(pixels), n)
	}
	h := t.m.Height()
	for i := 0; i < t.m.Count(); i++ {
		t.set(t.coordsX[i], h-1-t.coordsY[i], pixels[i])
	}
	offs := t.m.Count()
	for r, l := range t.rings {
		for i := 0; i < l; i++ {
			t.set(i, h+1+r, pixels[offs+i])
		}
		offs += l
	}
	t.s.Show()
	return nil
}

func (t *Terminal) Close() error {
	t.s.Fini()
	return nil
}
