// Package splice joins word recordings into one phrase: it trims silence
// around each word, overlaps neighbours with a short crossfade and pads the
// result with a fade-out tail.
package splice

import (
	"errors"
	"math"
	"time"

	"saytime/sample"
)

const (
	DefaultThreshold = 75
	DefaultFade      = 50 * time.Millisecond
	DefaultTail      = 200 * time.Millisecond
	DefaultTailPeak  = 1
)

var ErrNoSamples = errors.New("no samples to splice")

// Options configures concatenation.
type Options struct {
	Threshold int
	Fade      time.Duration
}

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Fade: DefaultFade}
}

// TrimSilence returns a copy of buf between the first and last samples whose
// magnitude exceeds threshold, inclusive. It returns nil if none does.
func TrimSilence(buf []int16, threshold int) []int16 {
	start, end := -1, -1
	for i, v := range buf {
		if abs(v) > threshold {
			if start < 0 {
				start = i
			}
			end = i
		}
	}
	if start < 0 {
		return nil
	}
	out := make([]int16, end-start+1)
	copy(out, buf[start:end+1])
	return out
}

func abs(v int16) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}

// FadeSamples is the overlap length Crossfade uses for buffers of length la
// and lb.
func FadeSamples(la, lb, sampleRate int, fade time.Duration) int {
	n := int(fade.Seconds() * float64(sampleRate))
	if n > la || n > lb {
		n = min(la, lb)
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Crossfade overlaps the tail of a with the head of b. Inside the overlap
// each output sample is a[i] + b[i]/2; a keeps full weight there. An empty
// a or b returns a copy of the other.
func Crossfade(a, b []int16, sampleRate int, fade time.Duration) []int16 {
	if len(a) == 0 {
		return clone(b)
	}
	if len(b) == 0 {
		return clone(a)
	}

	n := FadeSamples(len(a), len(b), sampleRate, fade)
	head := len(a) - n

	out := make([]int16, 0, len(a)+len(b)-n)
	out = append(out, a[:head]...)
	for i := 0; i < n; i++ {
		out = append(out, clip(float64(a[head+i])+float64(b[i])/2))
	}
	out = append(out, b[n:]...)
	return out
}

func clip(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func clone(buf []int16) []int16 {
	if len(buf) == 0 {
		return nil
	}
	out := make([]int16, len(buf))
	copy(out, buf)
	return out
}

// Concatenate trims both samples and crossfades them at a's frame rate. The
// result takes a's format; b's format is assumed identical.
func (o Options) Concatenate(a, b sample.Sample) sample.Sample {
	ta := TrimSilence(a.Frames, o.Threshold)
	tb := TrimSilence(b.Frames, o.Threshold)
	return sample.Sample{
		Format: a.Format,
		Frames: Crossfade(ta, tb, a.Format.FrameRate, o.Fade),
	}
}

// Concatenate joins a and b with the default crossfade.
func Concatenate(a, b sample.Sample, threshold int) sample.Sample {
	return Options{Threshold: threshold, Fade: DefaultFade}.Concatenate(a, b)
}

// Fold concatenates samples left to right.
func (o Options) Fold(samples []sample.Sample) (sample.Sample, error) {
	if len(samples) == 0 {
		return sample.Sample{}, ErrNoSamples
	}
	phrase := samples[0]
	if len(samples) == 1 {
		return sample.Sample{
			Format: phrase.Format,
			Frames: TrimSilence(phrase.Frames, o.Threshold),
		}, nil
	}
	for _, s := range samples[1:] {
		phrase = o.Concatenate(phrase, s)
	}
	return phrase, nil
}
