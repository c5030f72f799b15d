package pixarray

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// MMapStrip publishes each frame into a memory-mapped file, three bytes per
// pixel in the configured order. Another process (a simulator, a second
// LED driver) can map the same file and pick the frames up.
type MMapStrip struct {
	f         *os.File
	buf       mmap.MMap
	order     int
	numPixels int
}

func NewMMapStrip(path string, numPixels int, order int) (*MMapStrip, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", path, err)
	}
	err = f.Truncate(int64(numPixels * 3))
	if err != nil {
		f.Close() // Ignore error
		return nil, fmt.Errorf("couldn't size %s: %w", path, err)
	}
	buf, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close() // Ignore error
		return nil, fmt.Errorf("couldn't map %s: %w", path, err)
	}
	return &MMapStrip{f, buf, order, numPixels}, nil
}

func (ms *MMapStrip) MaxPerChannel() int {
	return 255
}

func (ms *MMapStrip) Write(pixels []Pixel) error {
	if len(pixels) != ms.numPixels {
		return fmt.Errorf("got %d pixels, strip has %d", len(pixels), ms.numPixels)
	}
	for i, p := range pixels {
		encode(ms.buf[i*3:i*3+3], ms.order, p)
	}
	return nil
}

// Pixel reads back pixel i as currently published.
func (ms *MMapStrip) Pixel(i int) Pixel {
	return decode(ms.buf[i*3:i*3+3], ms.order)
}

func (ms *MMapStrip) Close() error {
	err := ms.buf.Flush()
	if err != nil {
		return fmt.Errorf("couldn't flush: %w", err)
	}
	err = ms.buf.Unmap()
	if err != nil {
		return fmt.Errorf("couldn't unmap: %w", err)
	}
	return ms.f.Close()
}
