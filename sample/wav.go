package sample

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
	bitsPerSample    = 16
)

var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// DecodeWAV reads a mono 16-bit PCM wave stream.
func DecodeWAV(r io.ReadSeeker) (Sample, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return Sample{}, fmt.Errorf("%w: %v", ErrNotWAV, err)
		}
		return Sample{}, ErrNotWAV
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return Sample{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	if d.BitDepth != bitsPerSample {
		return Sample{}, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, d.BitDepth)
	}
	if d.NumChans != 1 {
		return Sample{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, d.NumChans)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("reading pcm: %w", err)
	}

	frames := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		frames[i] = int16(v)
	}
	return Sample{
		Format: Format{
			Channels:    int(d.NumChans),
			SampleWidth: int(d.BitDepth) / 8,
			FrameRate:   int(d.SampleRate),
		},
		Frames: frames,
	}, nil
}

// ReadFile decodes the wave file at path.
func ReadFile(path string) (Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sample{}, err
	}
	defer f.Close()

	s, err := DecodeWAV(f)
	if err != nil {
		return Sample{}, err
	}
	s.Path = path
	return s, nil
}

// WriteWAV encodes s as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, s Sample) error {
	if s.Format.SampleWidth != 0 && s.Format.SampleWidth != bitsPerSample/8 {
		return fmt.Errorf("%w: sample width %d", ErrUnsupportedFormat, s.Format.SampleWidth)
	}
	channels := s.Format.Channels
	if channels == 0 {
		channels = 1
	}

	enc := wav.NewEncoder(w, s.Format.FrameRate, bitsPerSample, channels, formatPCM)
	data := make([]int, len(s.Frames))
	for i, v := range s.Frames {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: s.Format.FrameRate},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	return enc.Close()
}

// WriteFile writes s to path as a wave file.
func WriteFile(path string, s Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if c := f.Close(); err == nil {
			err = c
		}
	}()
	return WriteWAV(f, s)
}
