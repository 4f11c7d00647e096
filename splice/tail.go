package splice

import (
	"math"
	"time"

	"saytime/sample"
)

// TailLen is the number of frames a tail of duration d adds at frameRate.
func TailLen(d time.Duration, frameRate int) int {
	n := int(math.Round(d.Seconds() * float64(frameRate)))
	return max(n, 0)
}

// Ramp returns n values falling linearly from peak to 0, both endpoints
// included.
func Ramp(n int, peak int16) []int16 {
	out := make([]int16, n)
	if n == 1 {
		out[0] = peak
		return out
	}
	for i := range out {
		out[i] = int16(float64(peak) * (1 - float64(i)/float64(n-1)))
	}
	return out
}

// AppendTail returns s followed by a decaying ramp of duration d. The ramp
// keeps the output buffer filled after the last word so the device does not
// cut it short.
func AppendTail(s sample.Sample, d time.Duration, peak int16) sample.Sample {
	tail := Ramp(TailLen(d, s.Format.FrameRate), peak)
	frames := make([]int16, 0, len(s.Frames)+len(tail))
	frames = append(frames, s.Frames...)
	frames = append(frames, tail...)
	return sample.Sample{Format: s.Format, Frames: frames}
}
