package main

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
	log "github.com/sirupsen/logrus"
)

// gpioLine is satisfied by *gpiocdev.Line, but this minimal interface makes testing easier
type gpioLine interface {
	SetValue(value int) error
	Value() (int, error)
	Close() error
}

// powerController switches the LED supply through a GPIO line, optionally
// waiting for a second line to report healthy power after switching on.
type powerController struct {
	ctrl       gpioLine
	status     gpioLine
	statusWait time.Duration
	poll       time.Duration
}

// openPower requests the control (and, if statusPin >= 0, status) lines.
// It returns nil when ctrlPin is negative: there's nothing to switch.
func openPower(chip string, ctrlPin, statusPin int, statusWait time.Duration) (*powerController, error) {
	if ctrlPin < 0 {
		return nil, nil
	}
	ctrl, err := gpiocdev.RequestLine(chip, ctrlPin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("couldn't set power control to output: %w", err)
	}
	pc := powerController{
		ctrl:       ctrl,
		statusWait: statusWait,
		poll:       50 * time.Millisecond,
	}
	if statusPin < 0 {
		return &pc, nil
	}
	status, err := gpiocdev.RequestLine(chip, statusPin, gpiocdev.AsInput)
	if err != nil {
		ctrl.Close() // Ignore error
		return nil, fmt.Errorf("couldn't set power status to input: %w", err)
	}
	pc.status = status
	return &pc, nil
}

func (pc *powerController) On() error {
	log.Info("Power on")
	err := pc.ctrl.SetValue(1)
	if err != nil {
		return fmt.Errorf("couldn't set power control high: %w", err)
	}
	if pc.status == nil {
		return nil
	}
	start := time.Now()
	for {
		val, err := pc.status.Value()
		if err != nil {
			return fmt.Errorf("couldn't query power status: %w", err)
		}
		t := time.Now()
		if val != 0 {
			log.Infof("Power stabilized after %v", t.Sub(start))
			return nil
		}
		if t.Sub(start) > pc.statusWait {
			return fmt.Errorf("timed out waiting for power to be healthy, started %v, now %v", start, t)
		}
		time.Sleep(pc.poll)
	}
}

// Off drops the control line. Status isn't waited for: it can take a while
// to fall and nothing depends on it.
func (pc *powerController) Off() error {
	log.Info("Power off")
	err := pc.ctrl.SetValue(0)
	if err != nil {
		return fmt.Errorf("couldn't set power control low: %w", err)
	}
	return nil
}

func (pc *powerController) Close() error {
	if pc.status != nil {
		pc.status.Close() // Ignore error
	}
	return pc.ctrl.Close()
}
