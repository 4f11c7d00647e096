package audio

import (
	"encoding/binary"
	"sync"
)

// feeder hands a frame buffer to a pull-style audio callback. done closes on
// the first callback that finds the buffer already exhausted, so the period
// holding the last frames has been consumed by the device by then.
type feeder struct {
	channels int

	mu     sync.Mutex
	frames []int16
	pos    int
	done   chan struct{}
	once   sync.Once
}

func (f *feeder) load(frames []int16) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = frames
	f.pos = 0
	f.done = make(chan struct{})
	f.once = sync.Once{}
	return f.done
}

// fill writes frameCount little-endian frames to out, padding with silence.
func (f *feeder) fill(out []byte, frameCount uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	drained := f.pos >= len(f.frames)
	want := int(frameCount) * f.channels
	for i := 0; i < want && i*2+1 < len(out); i++ {
		var v int16
		if f.pos < len(f.frames) {
			v = f.frames[f.pos]
			f.pos++
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	if drained && f.done != nil {
		f.once.Do(func() { close(f.done) })
	}
}
