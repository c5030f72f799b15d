package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jon-Bright/wordclock/clock"
	pixarray "github.com/Jon-Bright/wordclock/pixarray"
)

func TestParseFlagsDefaults(t *testing.T) {
	c, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if c.width != 11 || c.height != 10 || c.layout != "serpentine" || c.minuteLEDs != 4 {
		t.Errorf("Geometry defaults: got: %dx%d %s, %d minute LEDs", c.width, c.height, c.layout, c.minuteLEDs)
	}
	if c.mode != "wordclock" || c.powerCtrlPin != -1 || c.tick != 10*time.Millisecond {
		t.Errorf("Defaults: got: mode %s, power pin %d, tick %v", c.mode, c.powerCtrlPin, c.tick)
	}
	if c.dialect != "quarter-past" || c.status != "broker-connected" {
		t.Errorf("Defaults: got: dialect %s, status %s", c.dialect, c.status)
	}
}

func TestParseFlagsSources(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "wordclock.conf")
	err := os.WriteFile(cfg, []byte("height 12\nmode rain\nledchip none\n"), 0644)
	if err != nil {
		t.Fatalf("Couldn't write config: %v", err)
	}
	t.Setenv("WORDCLOCK_WIDTH", "8")
	t.Setenv("WORDCLOCK_MODE", "borealis")

	c, err := parseFlags([]string{"-config", cfg, "-dialect", "three-quarters"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if c.width != 8 {
		t.Errorf("Width from env: got: %d, want: 8", c.width)
	}
	if c.height != 12 || c.ledChip != "none" {
		t.Errorf("From config: got: height %d, ledchip %s", c.height, c.ledChip)
	}
	// Environment beats the config file
	if c.mode != "borealis" {
		t.Errorf("Mode: got: %s, want: borealis", c.mode)
	}
	if c.dialect != "three-quarters" {
		t.Errorf("Dialect from args: got: %s", c.dialect)
	}
}

func TestParseFlagsBad(t *testing.T) {
	if _, err := parseFlags([]string{"-width", "wide"}); err == nil {
		t.Errorf("Bad width accepted")
	}
}

func TestNewControllerMinuteRing(t *testing.T) {
	tests := []struct {
		args   []string
		status string
		lit    int
	}{
		{nil, "broker-connected", 2},
		{[]string{"-status", "network-disconnected"}, "network-disconnected", 1},
	}
	for _, test := range tests {
		c, err := parseFlags(test.args)
		if err != nil {
			t.Fatalf("parseFlags: %v", err)
		}
		pa := pixarray.NewPixArray(pixarray.NewMatrix(c.width, c.height, pixarray.Serpentine), c.minuteLEDs, c.secondLEDs, pixarray.NullStrip{})
		ctl, err := newController(c, pa, clock.Fixed{Hour: 10, Minute: 32}, nil)
		if err != nil {
			t.Fatalf("newController: %v", err)
		}
		tm := time.UnixMilli(0)
		for i := 0; i < 40; i++ {
			ctl.tick(tm.Add(time.Duration(i) * 50 * time.Millisecond))
		}
		r := ctl.report()
		if r.Mode != "WORDCLOCK" || r.Status != test.status || r.Palette != "rainbow" {
			t.Errorf("%v: report: got: %+v", test.args, r)
		}
		off, n := pa.MinuteRing()
		lit := 0
		for i := 0; i < n; i++ {
			if !pa.GetPixel(off + i).IsBlack() {
				lit++
			}
		}
		if lit != test.lit {
			t.Errorf("%v: minute LEDs lit: got: %d, want: %d", test.args, lit, test.lit)
		}
	}
}

func TestNewControllerBadConfig(t *testing.T) {
	tests := [][]string{
		{"-status", "online"},
		{"-dialect", "bavarian"},
		{"-mode", "disco"},
		{"-palette", "plaid"},
	}
	for _, args := range tests {
		c, err := parseFlags(args)
		if err != nil {
			t.Fatalf("parseFlags: %v", err)
		}
		pa := pixarray.NewPixArray(pixarray.NewMatrix(c.width, c.height, pixarray.Serpentine), c.minuteLEDs, c.secondLEDs, pixarray.NullStrip{})
		if _, err := newController(c, pa, clock.Fixed{}, nil); err == nil {
			t.Errorf("%v accepted", args)
		}
	}
}
