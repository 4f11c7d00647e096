package main

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"saytime/audio"
	"saytime/sample"
)

func pickerInput(keys string) deviceSelector {
	return func(c audio.Context) (*audio.DeviceInfo, error) {
		return audio.SelectDeviceFrom(c, strings.NewReader(keys), io.Discard)
	}
}

func twoDevices() *audio.FakeContext {
	fc := audio.NewFakeContext()
	fc.DeviceList = []audio.DeviceInfo{{ID: "0", Name: "Speakers"}, {ID: "1", Name: "Headphones"}}
	return fc
}

func TestPlayOnAbortedSelectionPlaysNothing(t *testing.T) {
	for _, keys := range []string{"q", "\x03"} {
		fc := twoDevices()
		err := playOn(context.Background(), fc, sample.Padded(8000, 0, 8, 500), "", pickerInput(keys))
		if !errors.Is(err, audio.ErrSelectionAborted) {
			t.Fatalf("keys %q: err = %v, want ErrSelectionAborted", keys, err)
		}
		if n := len(fc.Played()); n != 0 {
			t.Errorf("keys %q: played %d buffers after abort", keys, n)
		}
		if fc.Open() != 0 {
			t.Errorf("keys %q: device left open", keys)
		}
	}
}

func TestPlayOnSelectionFailureFallsBack(t *testing.T) {
	fc := twoDevices()
	// input ends before Enter: a read error, not an abort
	if err := playOn(context.Background(), fc, sample.Padded(8000, 0, 8, 500), "", pickerInput("j")); err != nil {
		t.Fatal(err)
	}
	if got := fc.Targets(); !slices.Equal(got, []string{""}) {
		t.Errorf("opened %q, want the system default", got)
	}
}

func TestPlayOnSelectedDevice(t *testing.T) {
	fc := twoDevices()
	if err := playOn(context.Background(), fc, sample.Padded(8000, 0, 8, 500), "", pickerInput("j\r")); err != nil {
		t.Fatal(err)
	}
	if got := fc.Targets(); !slices.Equal(got, []string{"Headphones"}) {
		t.Errorf("opened %q, want Headphones", got)
	}
	if n := len(fc.Played()); n != 1 {
		t.Errorf("played %d buffers, want 1", n)
	}
}

func TestPlayOnUnknownDeviceName(t *testing.T) {
	fc := twoDevices()
	if err := playOn(context.Background(), fc, sample.Padded(8000, 0, 8, 500), "Nope", nil); err == nil {
		t.Fatal("expected an error for an unknown device")
	}
	if n := len(fc.Played()); n != 0 {
		t.Errorf("played %d buffers", n)
	}
}
