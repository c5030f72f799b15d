package effects

import (
	"fmt"
	"sort"
	"strings"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// Dispatcher owns the active effect and the status overlay, and flushes
// the frame when either of them changed it. It isn't safe for concurrent
// use: one loop should own it and apply mode changes between ticks.
type Dispatcher struct {
	pa      *pixarray.PixArray
	modes   map[string]Effect
	active  Effect
	overlay Effect
	palette *Palette
	force   bool
}

// NewDispatcher registers modes under their Name. overlay may be nil.
func NewDispatcher(pa *pixarray.PixArray, overlay Effect, modes ...Effect) *Dispatcher {
	d := Dispatcher{
		pa:      pa,
		modes:   make(map[string]Effect),
		overlay: overlay,
	}
	for _, e := range modes {
		d.modes[e.Name()] = e
	}
	if overlay != nil {
		overlay.Init()
	}
	return &d
}

// Modes lists the registered mode names.
func (d *Dispatcher) Modes() []string {
	n := make([]string, 0, len(d.modes))
	for k := range d.modes {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (d *Dispatcher) Mode(name string) (Effect, bool) {
	e, ok := d.modes[strings.ToUpper(name)]
	return e, ok
}

// Active returns the active effect, nil before the first SetMode.
func (d *Dispatcher) Active() Effect {
	return d.active
}

// SetMode clears the frame and makes the named effect active. Its first
// paint will be forced.
func (d *Dispatcher) SetMode(name string) error {
	e, ok := d.Mode(name)
	if !ok {
		return fmt.Errorf("unknown mode %q", name)
	}
	log.Infof("Mode %s", e.Name())
	d.pa.Clear()
	d.active = e
	e.Init()
	d.force = true
	return nil
}

// Palette returns the palette on show: the active effect's own, if it
// reports one, otherwise the palette last set. nil if neither exists.
func (d *Dispatcher) Palette() *Palette {
	pr, ok := d.active.(interface{ Palette() *Palette })
	if ok && pr.Palette() != nil {
		return pr.Palette()
	}
	return d.palette
}

// SetPalette hands p to every effect that uses a palette.
func (d *Dispatcher) SetPalette(p *Palette) {
	log.Infof("Palette %s", p.Name())
	d.palette = p
	for _, e := range d.modes {
		ps, ok := e.(PaletteSetter)
		if ok {
			ps.SetPalette(p)
		}
	}
	d.force = true
}

// SetStatus forwards a connection state to the overlay, if it takes one.
func (d *Dispatcher) SetStatus(s State) {
	ss, ok := d.overlay.(interface{ SetState(State) })
	if ok {
		ss.SetState(s)
	}
}

// Tick paints the active effect, then the overlay, and writes the frame
// out if anything changed.
func (d *Dispatcher) Tick(now time.Time) (bool, error) {
	changed := false
	if d.active != nil {
		changed = d.active.Paint(now, d.force)
		d.force = false
	}
	if d.overlay != nil && d.overlay.Paint(now, false) {
		changed = true
	}
	if !changed {
		return false, nil
	}
	err := d.pa.Write()
	if err != nil {
		return true, fmt.Errorf("couldn't write frame: %w", err)
	}
	return true, nil
}
