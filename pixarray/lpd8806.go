package pixarray

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// This is satisfied by os.File, but this minimal interface makes testing easier
type dev interface {
	Fd() uintptr
	Write(b []byte) (n int, err error)
	Close() error
}

// LPD8806 drives a 7-bit-per-channel LPD8806 chain through a spidev device.
type LPD8806 struct {
	dev       dev
	order     int
	numPixels int
	sendBytes []byte
}

func OpenLPD8806(path string, numPixels int, spiSpeed uint32, order int) (*LPD8806, error) {
	f, err := os.OpenFile(path, os.O_RDWR, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed opening SPI: %w", err)
	}
	l, err := NewLPD8806(f, numPixels, spiSpeed, order)
	if err != nil {
		f.Close() // Ignore error
		return nil, err
	}
	return l, nil
}

func NewLPD8806(d dev, numPixels int, spiSpeed uint32, order int) (*LPD8806, error) {
	numReset := (numPixels + 31) / 32
	l := LPD8806{
		dev:       d,
		order:     order,
		numPixels: numPixels,
		sendBytes: make([]byte, numPixels*3+numReset),
	}

	if spiSpeed != 0 {
		err := l.setSPISpeed(spiSpeed)
		if err != nil {
			return nil, fmt.Errorf("couldn't set SPI speed: %w", err)
		}
	}

	firstReset := make([]byte, numReset)
	_, err := d.Write(firstReset)
	if err != nil {
		return nil, fmt.Errorf("couldn't reset: %w", err)
	}
	return &l, nil
}

const (
	_SPI_IOC_WR_MAX_SPEED_HZ = 0x40046B04
)

func (l *LPD8806) setSPISpeed(s uint32) error {
	return unix.IoctlSetPointerInt(int(l.dev.Fd()), _SPI_IOC_WR_MAX_SPEED_HZ, int(s))
}

func (l *LPD8806) MaxPerChannel() int {
	return 127
}

// Write expects channel values up to 255 and sends their top 7 bits.
func (l *LPD8806) Write(pixels []Pixel) error {
	if len(pixels) != l.numPixels {
		return fmt.Errorf("got %d pixels, strip has %d", len(pixels), l.numPixels)
	}
	for i, p := range pixels {
		b := l.sendBytes[i*3 : i*3+3]
		encode(b, l.order, Pixel{p.R >> 1, p.G >> 1, p.B >> 1})
		b[0] |= 0x80
		b[1] |= 0x80
		b[2] |= 0x80
	}
	_, err := l.dev.Write(l.sendBytes)
	return err
}

func (l *LPD8806) Close() error {
	return l.dev.Close()
}
