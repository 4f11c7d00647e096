package audio

import (
	"context"
	"sync"
)

// FakeContext is an in-memory output for tests. Every
// buffer passed to Play is recorded.
type FakeContext struct {
	DeviceList []DeviceInfo
	PlayErr    error
	OpenErr    error

	mu      sync.Mutex
	played  [][]int16
	configs []PlaybackConfig
	targets []string
	opened  int
	closed  int
}

func NewFakeContext() *FakeContext {
	return &FakeContext{}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) { return f.DeviceList, nil }
func (f *FakeContext) Close()                         {}

func (f *FakeContext) NewPlayback(device *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	f.mu.Lock()
	f.opened++
	f.configs = append(f.configs, config)
	target := ""
	if device != nil {
		target = device.Name
	}
	f.targets = append(f.targets, target)
	f.mu.Unlock()
	return &FakePlayback{ctx: f}, nil
}

// Played returns copies of the buffers written so far.
func (f *FakeContext) Played() [][]int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]int16, len(f.played))
	for i, p := range f.played {
		out[i] = append([]int16(nil), p...)
	}
	return out
}

func (f *FakeContext) Configs() []PlaybackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PlaybackConfig(nil), f.configs...)
}

// Targets returns the device name of each opened playback, "" for the
// system default.
func (f *FakeContext) Targets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.targets...)
}

// Open reports how many playback devices are currently open.
func (f *FakeContext) Open() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened - f.closed
}

type FakePlayback struct {
	ctx *FakeContext
}

func (p *FakePlayback) Play(ctx context.Context, frames []int16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ctx.PlayErr != nil {
		return p.ctx.PlayErr
	}
	p.ctx.mu.Lock()
	p.ctx.played = append(p.ctx.played, append([]int16(nil), frames...))
	p.ctx.mu.Unlock()
	return nil
}

func (p *FakePlayback) Close() {
	p.ctx.mu.Lock()
	p.ctx.closed++
	p.ctx.mu.Unlock()
}
