package splice

import (
	"math"
	"slices"
	"testing"
	"time"

	"saytime/sample"
)

func TestAppendTailLength(t *testing.T) {
	tests := []struct {
		d    time.Duration
		rate int
	}{
		{200 * time.Millisecond, 44100},
		{200 * time.Millisecond, 22050},
		{333 * time.Millisecond, 16000},
		{0, 8000},
	}
	for _, tt := range tests {
		s := sample.Padded(tt.rate, 0, 10, 500)
		got := AppendTail(s, tt.d, DefaultTailPeak)
		want := int(math.Round(tt.d.Seconds() * float64(tt.rate)))
		if added := len(got.Frames) - len(s.Frames); added != want {
			t.Errorf("tail(%v @ %d) added %d frames, want %d", tt.d, tt.rate, added, want)
		}
		if got.Format != s.Format {
			t.Errorf("format changed: %+v", got.Format)
		}
	}
}

func TestAppendTailKeepsPhrase(t *testing.T) {
	s := sample.Padded(1000, 0, 4, 700)
	got := AppendTail(s, 5*time.Millisecond, 32767)
	if !slices.Equal(got.Frames[:4], s.Frames) {
		t.Errorf("phrase changed: %v", got.Frames[:4])
	}
	if len(s.Frames) != 4 {
		t.Error("AppendTail mutated its input")
	}
}

func TestRamp(t *testing.T) {
	if got := Ramp(5, 100); !slices.Equal(got, []int16{100, 75, 50, 25, 0}) {
		t.Errorf("Ramp(5, 100) = %v", got)
	}
	if got := Ramp(1, 9); !slices.Equal(got, []int16{9}) {
		t.Errorf("Ramp(1, 9) = %v", got)
	}
	if got := Ramp(0, 9); len(got) != 0 {
		t.Errorf("Ramp(0, 9) = %v", got)
	}
	// a peak of 1 truncates to a single 1 followed by silence
	got := Ramp(4, 1)
	if !slices.Equal(got, []int16{1, 0, 0, 0}) {
		t.Errorf("Ramp(4, 1) = %v", got)
	}
}
