package sample

import (
	"fmt"
	"os"
	"path/filepath"
)

// Padded builds a mono clip of pad zero frames, body frames alternating
// between +amp and -amp, then pad zero frames again. It stands in for a
// recorded word in tests.
func Padded(rate, pad, body int, amp int16) Sample {
	frames := make([]int16, pad+body+pad)
	for i := 0; i < body; i++ {
		v := amp
		if i%2 == 1 {
			v = -amp
		}
		frames[pad+i] = v
	}
	return Sample{
		Format: Format{Channels: 1, SampleWidth: 2, FrameRate: rate},
		Frames: frames,
	}
}

// WriteTree creates root/<category>/<NN-category>.wav for count clips per
// category, using the clip returned by gen for each index.
func WriteTree(root string, counts map[string]int, gen func(category string, i int) Sample) error {
	for name, n := range counts {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			path := filepath.Join(dir, fmt.Sprintf("%02d-%s%d%s", i+1, name, i, Ext))
			if err := WriteFile(path, gen(name, i)); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return nil
}

// FullCounts covers every index a timestamp can produce.
var FullCounts = map[string]int{
	Days:        31,
	Months:      12,
	Hours:       24,
	Minutes:     60,
	MinuteNouns: 3,
}
