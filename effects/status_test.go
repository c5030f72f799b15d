package effects

import (
	"testing"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
)

func TestStatusBlink(t *testing.T) {
	pa, _ := newTestArray(11, 10, 4, 0)
	off, n := pa.MinuteRing()
	s := NewStatus(pa)
	s.Init()

	tests := []struct {
		state State
		ms    int64
		lit   int
		color pixarray.Pixel
	}{
		{Initializing, 500, 2, hsv(hueBlue)},
		{Initializing, 750, 3, hsv(hueBlue)},
		{NetworkDisconnected, 1000, 0, hsv(hueBlue)},
		{NetworkConnected, 1250, 1, hsv(huePurple)},
		{BrokerDisconnected, 1500, 2, hsv(huePurple)},
	}
	for _, test := range tests {
		s.SetState(test.state)
		if !s.Paint(time.UnixMilli(test.ms), true) {
			t.Errorf("%v at %dms: no change reported", test.state, test.ms)
		}
		for i := 0; i < n; i++ {
			want := pixarray.Pixel{}
			if i == test.lit {
				want = test.color
			}
			if got := pa.GetPixel(off + i); got != want {
				t.Errorf("%v at %dms, LED %d: got: %v, want: %v", test.state, test.ms, i, got, want)
			}
		}
	}
}

func TestStatusConnectedClearsOnce(t *testing.T) {
	pa, _ := newTestArray(11, 10, 4, 0)
	off, n := pa.MinuteRing()
	s := NewStatus(pa)
	s.Init()
	tm := time.UnixMilli(0)
	s.SetState(NetworkConnected)
	s.Paint(tm, false)

	s.SetState(BrokerConnected)
	tm = tm.Add(UpdateInterval)
	if !s.Paint(tm, false) {
		t.Errorf("Clearing paint reported no change")
	}
	for i := 0; i < n; i++ {
		if !pa.GetPixel(off + i).IsBlack() {
			t.Errorf("LED %d still lit", i)
		}
	}
	// Something else owns the ring from now on
	pa.SetOne(off, pixarray.Pixel{1, 2, 3})
	tm = tm.Add(UpdateInterval)
	if s.Paint(tm, true) {
		t.Errorf("Connected paint reported a change")
	}
	if got := pa.GetPixel(off); got != (pixarray.Pixel{1, 2, 3}) {
		t.Errorf("Ring overwritten: %v", got)
	}
}

func TestStatusWithoutRing(t *testing.T) {
	pa, _ := newTestArray(11, 10, 0, 0)
	s := NewStatus(pa)
	s.Init()
	if s.Paint(time.UnixMilli(0), true) {
		t.Errorf("Paint without a minute ring reported a change")
	}
}

func TestParseState(t *testing.T) {
	for name, want := range StringStates {
		got, err := ParseState(name)
		if err != nil {
			t.Errorf("ParseState(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseState(%q): got: %v, want: %v", name, got, want)
		}
		if got.String() != name {
			t.Errorf("String(): got: %s, want: %s", got.String(), name)
		}
	}
	if _, err := ParseState("Broker-Connected"); err != nil {
		t.Errorf("Mixed case rejected: %v", err)
	}
	if _, err := ParseState("online"); err == nil {
		t.Errorf("Unknown state accepted")
	}
}
