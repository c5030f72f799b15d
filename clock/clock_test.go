package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
)

func TestSystem(t *testing.T) {
	s, err := NewSystem("")
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	if s.Location().String() != DefaultZone {
		t.Errorf("Wrong default zone, got: %s, want: %s", s.Location(), DefaultZone)
	}
	// 2024-07-01 10:32:45 UTC is 12:32:45 CEST
	s.now = func() time.Time { return time.Date(2024, 7, 1, 10, 32, 45, 0, time.UTC) }
	got, ok := s.Now()
	want := Time{12, 32, 45}
	if !ok || got != want {
		t.Errorf("Wrong time, got: %v/%v, want: %v", got, ok, want)
	}

	_, err = NewSystem("Nowhere/Special")
	if err == nil {
		t.Errorf("Bogus zone accepted")
	}
}

func TestNTP(t *testing.T) {
	n := NewNTP("pool.example", time.Minute, time.UTC)
	n.now = func() time.Time { return time.Date(2024, 1, 1, 23, 59, 50, 0, time.UTC) }
	fail := true
	n.query = func(server string) (*ntp.Response, error) {
		if server != "pool.example" {
			t.Errorf("Wrong server queried, got: %s", server)
		}
		if fail {
			return nil, errors.New("no route")
		}
		return &ntp.Response{ClockOffset: 15 * time.Second, Stratum: 2}, nil
	}

	if _, ok := n.Now(); ok {
		t.Errorf("Time reported before first sync")
	}
	if err := n.Sync(); err == nil {
		t.Errorf("Failed query reported as success")
	}
	if _, ok := n.Now(); ok {
		t.Errorf("Time reported after failed sync")
	}

	fail = false
	if err := n.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	got, ok := n.Now()
	want := Time{0, 0, 5}
	if !ok || got != want {
		t.Errorf("Wrong time, got: %v/%v, want: %v", got, ok, want)
	}
}

func TestNTPRejectsInvalid(t *testing.T) {
	n := NewNTP("pool.example", time.Minute, time.UTC)
	n.query = func(string) (*ntp.Response, error) {
		return &ntp.Response{ClockOffset: time.Hour, Stratum: 0}, nil
	}
	if err := n.Sync(); err == nil {
		t.Errorf("Kiss-of-death response accepted")
	}
	if _, ok := n.Offset(); ok {
		t.Errorf("Offset stored from invalid response")
	}
}

func TestFixed(t *testing.T) {
	var s Source = Fixed{1, 3, 0}
	got, ok := s.Now()
	if !ok || got != (Time{1, 3, 0}) {
		t.Errorf("Wrong time, got: %v/%v", got, ok)
	}
}
