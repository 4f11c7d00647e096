//go:build linux

package audio

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

type pulseContext struct {
	client *pulse.Client
}

func NewContext() (Context, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("saytime"))
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	return &pulseContext{client: c}, nil
}

func (p *pulseContext) Devices() ([]DeviceInfo, error) {
	sinks, err := p.client.ListSinks()
	if err != nil {
		return nil, fmt.Errorf("pulse list sinks: %w", err)
	}
	var devices []DeviceInfo
	for _, s := range sinks {
		devices = append(devices, DeviceInfo{
			ID:   s.ID(),
			Name: s.Name(),
		})
	}
	return devices, nil
}

func (p *pulseContext) NewPlayback(device *DeviceInfo, config PlaybackConfig) (PlaybackDevice, error) {
	return &pulsePlayback{
		client: p.client,
		device: device,
		config: config,
	}, nil
}

func (p *pulseContext) Close() {
	p.client.Close()
}

type pulsePlayback struct {
	client *pulse.Client
	device *DeviceInfo
	config PlaybackConfig
	stream *pulse.PlaybackStream
}

func (pb *pulsePlayback) Play(ctx context.Context, frames []int16) error {
	if len(frames) == 0 {
		return nil
	}

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(frames) || ctx.Err() != nil {
			return 0, pulse.EndOfData
		}
		n := copy(buf, frames[pos:])
		pos += n
		return n, nil
	})

	opts := []pulse.PlaybackOption{
		pulse.PlaybackSampleRate(int(pb.config.SampleRate)),
		pulse.PlaybackLatency(0.1),
	}
	switch pb.config.Channels {
	case 1:
		opts = append(opts, pulse.PlaybackMono)
	case 2:
		opts = append(opts, pulse.PlaybackStereo)
	default:
		return fmt.Errorf("pulse: %d channels not supported", pb.config.Channels)
	}
	opts = append(opts, pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
		vols := make(proto.ChannelVolumes, pb.config.Channels)
		for i := range vols {
			vols[i] = uint32(proto.VolumeNorm)
		}
		p.ChannelVolumes = vols
	}))
	if pb.device != nil {
		sink, err := pb.client.SinkByID(pb.device.ID)
		if err == nil && sink != nil {
			opts = append(opts, pulse.PlaybackSink(sink))
		}
	}

	stream, err := pb.client.NewPlayback(reader, opts...)
	if err != nil {
		return fmt.Errorf("pulse playback: %w", err)
	}
	pb.stream = stream

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("pulse playback: %w", err)
	}
	return ctx.Err()
}

func (pb *pulsePlayback) Close() {
	if pb.stream != nil {
		pb.stream.Stop()
		pb.stream.Close()
		pb.stream = nil
	}
}
