package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	effects "github.com/Jon-Bright/wordclock/effects"
	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

var errStopped = errors.New("render loop stopped")

// powerSwitch turns the LED supply on and off. nil means there's nothing
// to switch.
type powerSwitch interface {
	On() error
	Off() error
}

type request struct {
	fn    func() (string, error)
	reply chan response
}

type response struct {
	s   string
	err error
}

// Report is what the control surfaces show when asked for the state.
type Report struct {
	Mode       string   `json:"mode"`
	Modes      []string `json:"modes"`
	Palette    string   `json:"palette"`
	Palettes   []string `json:"palettes"`
	Status     string   `json:"status"`
	Brightness int      `json:"brightness"`
	Color      string   `json:"color"`
	Lit        bool     `json:"lit"`
}

// Controller owns the dispatcher and the frame. All changes go through
// Do, which runs them on the render loop between ticks.
type Controller struct {
	pa     *pixarray.PixArray
	d      *effects.Dispatcher
	mood   *effects.MoodLight
	status effects.State
	power  powerSwitch
	rng    *rand.Rand
	reqs   chan request
	done   chan struct{}
	lit    bool
}

func NewController(pa *pixarray.PixArray, d *effects.Dispatcher, mood *effects.MoodLight, power powerSwitch, seed int64) *Controller {
	return &Controller{
		pa:    pa,
		d:     d,
		mood:  mood,
		power: power,
		rng:   rand.New(rand.NewSource(seed)),
		reqs:  make(chan request),
		done:  make(chan struct{}),
	}
}

// Run ticks the dispatcher every tick and applies requests in between,
// until ctx is done.
func (c *Controller) Run(ctx context.Context, tick time.Duration) {
	defer close(c.done)
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-c.reqs:
			s, err := r.fn()
			r.reply <- response{s, err}
		case now := <-t.C:
			c.tick(now)
		}
	}
}

func (c *Controller) tick(now time.Time) {
	changed, err := c.d.Tick(now)
	if err != nil {
		log.Errorf("Tick failed: %v", err)
	}
	if !changed {
		return
	}
	c.updatePower()
}

// updatePower follows the frame: power on as soon as anything is lit, off
// once everything's black again.
func (c *Controller) updatePower() {
	lit := c.frameLit()
	if lit == c.lit {
		return
	}
	c.lit = lit
	if c.power == nil {
		return
	}
	var err error
	if lit {
		err = c.power.On()
	} else {
		err = c.power.Off()
	}
	if err != nil {
		log.Errorf("Power switch failed: %v", err)
	}
}

func (c *Controller) frameLit() bool {
	for _, p := range c.pa.GetPixels() {
		if !p.IsBlack() {
			return true
		}
	}
	return false
}

// Do runs fn on the render loop and returns its result.
func (c *Controller) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	r := request{fn, make(chan response, 1)}
	select {
	case c.reqs <- r:
	case <-c.done:
		return "", errStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case resp := <-r.reply:
		return resp.s, resp.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// The methods below must only be called through Do.

func (c *Controller) mode() string {
	if c.d.Active() == nil {
		return "OFF"
	}
	return c.d.Active().Name()
}

func (c *Controller) setMode(name string) error {
	return c.d.SetMode(name)
}

func (c *Controller) setPalette(name string) error {
	p, err := effects.PaletteByName(name, c.rng)
	if err != nil {
		return err
	}
	c.d.SetPalette(p)
	return nil
}

func (c *Controller) setStatus(name string) error {
	st, err := effects.ParseState(name)
	if err != nil {
		return err
	}
	c.status = st
	c.d.SetStatus(st)
	return nil
}

func (c *Controller) setBrightness(b int) error {
	if b < 0 || b > 255 {
		return fmt.Errorf("brightness %d outside 0-255", b)
	}
	c.pa.SetBrightness(b)
	// Rewrite so the change shows even if nothing's animating
	return c.pa.Write()
}

// setColor switches to the mood light, fading to p.
func (c *Controller) setColor(p pixarray.Pixel) error {
	if c.mood == nil {
		return errors.New("no mood light configured")
	}
	c.mood.SetColor(p)
	if c.mode() == c.mood.Name() {
		return nil
	}
	return c.d.SetMode(c.mood.Name())
}

func (c *Controller) color() string {
	if c.mood == nil {
		return "000000"
	}
	return hexColor(c.mood.Color())
}

func (c *Controller) report() Report {
	r := Report{
		Mode:       c.mode(),
		Modes:      c.d.Modes(),
		Palettes:   effects.PaletteNames(),
		Status:     c.status.String(),
		Brightness: c.pa.Brightness(),
		Color:      c.color(),
		Lit:        c.frameLit(),
	}
	if p := c.d.Palette(); p != nil {
		r.Palette = p.Name()
	}
	return r
}

func hexColor(p pixarray.Pixel) string {
	return fmt.Sprintf("%02X%02X%02X", p.R, p.G, p.B)
}

// parseColor reads an RRGGBB hex colour, with or without a leading '#'.
func parseColor(s string) (pixarray.Pixel, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var p pixarray.Pixel
	if len(s) != 6 {
		return p, fmt.Errorf("color %q isn't RRGGBB", s)
	}
	n, err := fmt.Sscanf(s, "%02X%02X%02X", &p.R, &p.G, &p.B)
	if err != nil {
		return p, fmt.Errorf("couldn't parse color %q: %w", s, err)
	}
	if n != 3 {
		return p, fmt.Errorf("only %d components parsed from %q", n, s)
	}
	return p, nil
}
