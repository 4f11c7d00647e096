// Package beep synthesizes the short time-signal tick that can precede an
// announcement.
package beep

import (
	"math"
	"time"

	"saytime/sample"
)

const (
	// Chime: high pitch, short
	chimeFreq     = 1200
	chimeVolume   = 0.5
	chimeDecay    = 60
	chimeDuration = 0.2

	// Gap between the chime and the first word.
	Gap = 150 * time.Millisecond
)

// Tick returns a mono sine at freq with an exponential decay envelope.
func Tick(sampleRate int, freq float64, duration float64, volume float64, decay float64) []int16 {
	n := int(float64(sampleRate) * duration)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

// Chime renders the start tick in format f.
func Chime(f sample.Format) sample.Sample {
	return sample.Sample{
		Format: f,
		Frames: Tick(f.FrameRate, chimeFreq, chimeDuration, chimeVolume, chimeDecay),
	}
}

// Prepend returns the chime, a gap of silence, then s.
func Prepend(s sample.Sample) sample.Sample {
	chime := Chime(s.Format).Frames
	gap := int(math.Round(Gap.Seconds() * float64(s.Format.FrameRate)))
	frames := make([]int16, 0, len(chime)+gap+len(s.Frames))
	frames = append(frames, chime...)
	frames = append(frames, make([]int16, gap)...)
	frames = append(frames, s.Frames...)
	return sample.Sample{Format: s.Format, Frames: frames}
}
