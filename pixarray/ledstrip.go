package pixarray

// LEDStrip is the hardware (or pretend hardware) a PixArray is flushed to.
// Write receives the visible pixels in chain order: matrix, minute ring,
// second ring.
type LEDStrip interface {
	MaxPerChannel() int
	Write(pixels []Pixel) error
	Close() error
}

// NullStrip discards every frame. Useful when running headless.
type NullStrip struct{}

func (NullStrip) MaxPerChannel() int {
	return 255
}

func (NullStrip) Write(pixels []Pixel) error {
	return nil
}

func (NullStrip) Close() error {
	return nil
}
