package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saytime/log"
	"saytime/sample"
)

var ErrUnsupportedWidth = errors.New("unsupported sample width")

type PlaybackConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewPlayback(device *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error)
	Close()
}

// PlaybackDevice writes interleaved signed 16-bit frames to an output.
// Play blocks until the buffer has drained or ctx is cancelled.
type PlaybackDevice interface {
	Play(ctx context.Context, frames []int16) error
	Close()
}

// FindDevice returns the output device called name.
func FindDevice(c Context, name string) (*DeviceInfo, error) {
	devices, err := c.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("output device %q not found", name)
}

// Play opens an output matching s's format, writes s and releases the
// device on every path out.
func Play(ctx context.Context, c Context, device *DeviceInfo, s sample.Sample) (err error) {
	if s.Format.SampleWidth != 2 {
		return fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, s.Format.SampleWidth)
	}

	name := "system default"
	if device != nil {
		name = device.Name
	}
	start := time.Now()
	defer func() {
		log.Playback(name, s.Duration().Seconds(), float64(time.Since(start).Milliseconds()), err)
	}()

	dev, err := c.NewPlayback(device, PlaybackConfig{
		SampleRate: uint32(s.Format.FrameRate),
		Channels:   uint32(s.Format.Channels),
	})
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer dev.Close()

	if err := dev.Play(ctx, s.Frames); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
