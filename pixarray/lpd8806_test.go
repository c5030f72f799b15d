package pixarray

import (
	"bytes"
	"testing"
)

type testDev struct {
	writes [][]byte
	closed bool
}

func (td *testDev) Fd() uintptr {
	return 0
}

func (td *testDev) Write(b []byte) (int, error) {
	td.writes = append(td.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (td *testDev) Close() error {
	td.closed = true
	return nil
}

func TestLPD8806(t *testing.T) {
	td := &testDev{}
	l, err := NewLPD8806(td, 2, 0, GRB)
	if err != nil {
		t.Fatalf("NewLPD8806 failed: %v", err)
	}
	if len(td.writes) != 1 || !bytes.Equal(td.writes[0], []byte{0}) {
		t.Fatalf("Wrong initial reset, got: %v", td.writes)
	}
	if l.MaxPerChannel() != 127 {
		t.Errorf("Wrong max per channel, got: %d", l.MaxPerChannel())
	}
	err = l.Write([]Pixel{{255, 128, 2}, {0, 0, 0}})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := []byte{0xC0, 0xFF, 0x81, 0x80, 0x80, 0x80, 0x00}
	if !bytes.Equal(td.writes[1], want) {
		t.Errorf("Wrong frame, got: % x, want: % x", td.writes[1], want)
	}
	if err = l.Write(make([]Pixel, 3)); err == nil {
		t.Errorf("Long frame accepted")
	}
	l.Close()
	if !td.closed {
		t.Errorf("Device not closed")
	}
}
