package pixarray

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

const (
	SYMBOL_HIGH = 0x6 // 1 1 0
	SYMBOL_LOW  = 0x4 // 1 0 0

	// Three SPI bits per WS281x bit: 2.4MHz gives the 800kHz data rate.
	ws281xSPIFreq = 2400 * physic.KiloHertz
	// Trailing zero bytes hold the line low for >50us to latch the frame.
	ws281xResetBytes = 20
)

// txer is satisfied by spi.Conn, but this minimal interface makes testing easier
type txer interface {
	Tx(w, r []byte) error
}

// WS281x drives a WS2811/WS2812 chain from the MOSI line of an SPI port.
// Each data bit becomes a three-bit symbol, so one pixel takes 9 bytes.
type WS281x struct {
	conn   txer
	port   spi.PortCloser
	order  int
	pixels []byte
	buf    []byte
}

// NewWS281x opens the named SPI port ("" for the first one available).
// periph's host drivers must already be initialised.
func NewWS281x(portName string, numPixels int, order int) (*WS281x, error) {
	p, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("couldn't open SPI port %q: %w", portName, err)
	}
	c, err := p.Connect(ws281xSPIFreq, spi.Mode0, 8)
	if err != nil {
		p.Close() // Ignore error
		return nil, fmt.Errorf("couldn't connect to SPI port %q: %w", portName, err)
	}
	ws := newWS281x(c, numPixels, order)
	ws.port = p
	return ws, nil
}

func newWS281x(c txer, numPixels int, order int) *WS281x {
	return &WS281x{
		conn:   c,
		order:  order,
		pixels: make([]byte, numPixels*3),
		buf:    make([]byte, numPixels*9+ws281xResetBytes),
	}
}

func (ws *WS281x) MaxPerChannel() int {
	return 255
}

func (ws *WS281x) Write(pixels []Pixel) error {
	if len(pixels)*3 != len(ws.pixels) {
		return fmt.Errorf("got %d pixels, strip has %d", len(pixels), len(ws.pixels)/3)
	}
	for i, p := range pixels {
		encode(ws.pixels[i*3:i*3+3], ws.order, p)
	}
	for i := range ws.buf {
		ws.buf[i] = 0
	}
	bitPos := 0
	for _, v := range ws.pixels {
		for k := 7; k >= 0; k-- {
			symbol := SYMBOL_LOW
			if (v & (1 << uint(k))) != 0 {
				symbol = SYMBOL_HIGH
			}
			for l := 2; l >= 0; l-- {
				if (symbol & (1 << uint(l))) != 0 {
					ws.buf[bitPos/8] |= 0x80 >> uint(bitPos%8)
				}
				bitPos++
			}
		}
	}
	return ws.conn.Tx(ws.buf, nil)
}

func (ws *WS281x) Close() error {
	if ws.port == nil {
		return nil
	}
	return ws.port.Close()
}
