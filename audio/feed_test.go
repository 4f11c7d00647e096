package audio

import (
	"encoding/binary"
	"testing"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestFeederWaitsForDrainPeriod(t *testing.T) {
	f := &feeder{channels: 1}
	done := f.load([]int16{1, -2, 3, -4, 5, -6})
	out := make([]byte, 8)

	f.fill(out, 4)
	if closed(done) {
		t.Fatal("done after the first period")
	}
	f.fill(out, 4)
	if got := int16(binary.LittleEndian.Uint16(out[2:])); got != -6 {
		t.Errorf("second period frame 1 = %d, want -6", got)
	}
	if got := int16(binary.LittleEndian.Uint16(out[4:])); got != 0 {
		t.Errorf("padding = %d, want 0", got)
	}
	// the last frames were only just handed over
	if closed(done) {
		t.Fatal("done before the device consumed the final period")
	}
	f.fill(out, 4)
	if !closed(done) {
		t.Fatal("done not closed after a silent period")
	}
	f.fill(out, 4)
}

func TestFeederExactPeriod(t *testing.T) {
	f := &feeder{channels: 2}
	done := f.load([]int16{1, 2, 3, 4})
	out := make([]byte, 8)

	f.fill(out, 2)
	if closed(done) {
		t.Fatal("done in the period carrying the data")
	}
	f.fill(out, 2)
	if !closed(done) {
		t.Fatal("done not closed on the following period")
	}
}

func TestFeederReload(t *testing.T) {
	f := &feeder{channels: 1}
	out := make([]byte, 4)
	first := f.load([]int16{7})
	f.fill(out, 2)
	f.fill(out, 2)
	if !closed(first) {
		t.Fatal("first buffer not drained")
	}
	second := f.load([]int16{9})
	if closed(second) {
		t.Fatal("second buffer reported drained before playing")
	}
	f.fill(out, 2)
	if got := int16(binary.LittleEndian.Uint16(out)); got != 9 {
		t.Errorf("frame = %d, want 9", got)
	}
}
