package main

import (
	"errors"
	"testing"
	"time"
)

type fakeLine struct {
	values []int
	reads  int
	set    []int
	err    error
	closed bool
}

func (l *fakeLine) SetValue(v int) error {
	if l.err != nil {
		return l.err
	}
	l.set = append(l.set, v)
	return nil
}

func (l *fakeLine) Value() (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	v := l.values[len(l.values)-1]
	if l.reads < len(l.values) {
		v = l.values[l.reads]
	}
	l.reads++
	return v, nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

func TestPowerOnWaitsForStatus(t *testing.T) {
	ctrl := &fakeLine{}
	status := &fakeLine{values: []int{0, 0, 1}}
	pc := &powerController{ctrl: ctrl, status: status, statusWait: time.Second, poll: time.Millisecond}
	err := pc.On()
	if err != nil {
		t.Fatalf("On: %v", err)
	}
	if status.reads != 3 {
		t.Errorf("Status read %d times, want 3", status.reads)
	}
	err = pc.Off()
	if err != nil {
		t.Fatalf("Off: %v", err)
	}
	if len(ctrl.set) != 2 || ctrl.set[0] != 1 || ctrl.set[1] != 0 {
		t.Errorf("Control line: got: %v, want: [1 0]", ctrl.set)
	}
	pc.Close()
	if !ctrl.closed || !status.closed {
		t.Errorf("Lines not closed")
	}
}

func TestPowerOnTimeout(t *testing.T) {
	pc := &powerController{
		ctrl:       &fakeLine{},
		status:     &fakeLine{values: []int{0}},
		statusWait: 10 * time.Millisecond,
		poll:       time.Millisecond,
	}
	if err := pc.On(); err == nil {
		t.Errorf("On succeeded without healthy power")
	}
}

func TestPowerWithoutStatus(t *testing.T) {
	ctrl := &fakeLine{}
	pc := &powerController{ctrl: ctrl}
	if err := pc.On(); err != nil {
		t.Errorf("On: %v", err)
	}
	ctrl.err = errors.New("line gone")
	if err := pc.Off(); err == nil {
		t.Errorf("Off ignored a line error")
	}
}

func TestOpenPowerDisabled(t *testing.T) {
	pc, err := openPower("gpiochip0", -1, 5, time.Second)
	if pc != nil || err != nil {
		t.Errorf("openPower(-1): got: %v, %v, want nil, nil", pc, err)
	}
}
