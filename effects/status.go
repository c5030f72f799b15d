package effects

import (
	"fmt"
	"strings"
	"time"

	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	log "github.com/sirupsen/logrus"
)

// State is the connection state shown by the Status overlay.
type State int

const (
	Initializing State = iota
	NetworkDisconnected
	NetworkConnected
	BrokerDisconnected
	BrokerConnected
)

var StringStates map[string]State = map[string]State{
	"initializing":         Initializing,
	"network-disconnected": NetworkDisconnected,
	"network-connected":    NetworkConnected,
	"broker-disconnected":  BrokerDisconnected,
	"broker-connected":     BrokerConnected,
}

func ParseState(s string) (State, error) {
	st, ok := StringStates[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

func (s State) String() string {
	for k, v := range StringStates {
		if v == s {
			return k
		}
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	statusBlinkStep = 250 * time.Millisecond
	hueBlue         = 160
	huePurple       = 192
)

// Status blinks a dot around the minute ring until everything's connected.
type Status struct {
	pa    *pixarray.PixArray
	state State
	// dotShown is set while the ring may still carry a dot of ours
	dotShown bool
	limiter
}

func NewStatus(pa *pixarray.PixArray) *Status {
	return &Status{
		pa:      pa,
		limiter: limiter{interval: UpdateInterval},
	}
}

func (s *Status) State() State {
	return s.state
}

func (s *Status) SetState(st State) {
	if st == s.state {
		return
	}
	log.Infof("Status %v -> %v", s.state, st)
	s.state = st
}

func (s *Status) Init() {
	off, n := s.pa.MinuteRing()
	s.pa.ClearRange(off, n)
	s.dotShown = false
	s.reset()
}

func (s *Status) Paint(now time.Time, force bool) bool {
	if !s.ready(now, force) {
		return false
	}
	off, n := s.pa.MinuteRing()
	if n == 0 {
		return false
	}
	var hue uint8
	switch s.state {
	case Initializing, NetworkDisconnected:
		hue = hueBlue
	case NetworkConnected, BrokerDisconnected:
		hue = huePurple
	default:
		if s.dotShown {
			s.pa.ClearRange(off, n)
			s.dotShown = false
			return true
		}
		return false
	}
	s.dotShown = true
	i := int(now.UnixMilli()/statusBlinkStep.Milliseconds()) % 4
	s.pa.ClearRange(off, n)
	s.pa.SetOne(off+i%n, hsv(hue))
	return true
}

func (s *Status) Name() string {
	return "STATUS"
}
