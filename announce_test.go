package main

import (
	"errors"
	"testing"
	"time"

	"saytime/beep"
	"saytime/sample"
	"saytime/splice"
	"saytime/timeidx"
)

const testRate = 8000

var categoryID = map[string]int16{
	sample.Days:        1,
	sample.Months:      2,
	sample.Hours:       3,
	sample.Minutes:     4,
	sample.MinuteNouns: 5,
}

// wordAmp gives every recording a distinct amplitude so its position in the
// phrase identifies it.
func wordAmp(category string, i int) int16 {
	return 1000*categoryID[category] + int16(i)
}

func loadStore(t *testing.T, counts map[string]int) *sample.Store {
	t.Helper()
	root := t.TempDir()
	err := sample.WriteTree(root, counts, func(category string, i int) sample.Sample {
		return sample.Padded(testRate, 20, 10, wordAmp(category, i))
	})
	if err != nil {
		t.Fatal(err)
	}
	st, err := sample.Load(root, sample.Categories, sample.LoadOptions{Order: sample.OrderNatural})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func noFade() announceOptions {
	return announceOptions{Splice: splice.Options{Threshold: splice.DefaultThreshold}}
}

func TestAnnouncePicksComponents(t *testing.T) {
	st := loadStore(t, sample.FullCounts)
	at := time.Date(2024, 2, 24, 13, 41, 0, 0, time.Local)

	phrase, err := announce(st, at, noFade())
	if err != nil {
		t.Fatal(err)
	}
	if len(phrase.Frames) != 50 {
		t.Fatalf("phrase has %d frames, want 50", len(phrase.Frames))
	}
	want := []struct {
		cat string
		idx int
	}{
		{sample.Days, 23},
		{sample.Months, 1},
		{sample.Hours, 12},
		{sample.Minutes, 40},
		{sample.MinuteNouns, 2},
	}
	for i, w := range want {
		if got := phrase.Frames[i*10]; got != wordAmp(w.cat, w.idx) {
			t.Errorf("word %d = %d, want %s[%d] (%d)", i, got, w.cat, w.idx, wordAmp(w.cat, w.idx))
		}
	}
	if phrase.Format.FrameRate != testRate {
		t.Errorf("frame rate = %d", phrase.Format.FrameRate)
	}
}

func TestAnnounceMidnightWraps(t *testing.T) {
	st := loadStore(t, sample.FullCounts)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	phrase, err := announce(st, at, noFade())
	if err != nil {
		t.Fatal(err)
	}
	if got := phrase.Frames[20]; got != wordAmp(sample.Hours, 23) {
		t.Errorf("hour word = %d, want last hour recording", got)
	}
	if got := phrase.Frames[30]; got != wordAmp(sample.Minutes, 59) {
		t.Errorf("minute word = %d, want last minute recording", got)
	}
	if got := phrase.Frames[40]; got != wordAmp(sample.MinuteNouns, 0) {
		t.Errorf("minute noun = %d, want form 0", got)
	}
}

func TestAnnounceMissingRecording(t *testing.T) {
	counts := map[string]int{}
	for k, v := range sample.FullCounts {
		counts[k] = v
	}
	counts[sample.Hours] = 12
	st := loadStore(t, counts)

	_, err := announce(st, time.Date(2024, 2, 24, 13, 41, 0, 0, time.Local), noFade())
	if !errors.Is(err, sample.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
	var ie *sample.IndexError
	if !errors.As(err, &ie) || ie.Category != sample.Hours || ie.Index != 12 || ie.Len != 12 {
		t.Errorf("index error = %+v", ie)
	}
}

func TestAnnounceChimeAndTail(t *testing.T) {
	st := loadStore(t, sample.FullCounts)
	opts := noFade()
	opts.Chime = true
	opts.Tail = 200 * time.Millisecond
	opts.TailPeak = splice.DefaultTailPeak

	phrase, err := announce(st, time.Date(2024, 2, 24, 13, 41, 0, 0, time.Local), opts)
	if err != nil {
		t.Fatal(err)
	}
	chime := len(beep.Chime(phrase.Format).Frames)
	gap := 1200
	tail := splice.TailLen(opts.Tail, testRate)
	if want := chime + gap + 50 + tail; len(phrase.Frames) != want {
		t.Fatalf("phrase has %d frames, want %d", len(phrase.Frames), want)
	}
	if got := phrase.Frames[chime+gap]; got != wordAmp(sample.Days, 23) {
		t.Errorf("first word after chime = %d", got)
	}
	if phrase.Frames[len(phrase.Frames)-1] != 0 {
		t.Error("tail should end at zero")
	}
}

func TestAnnounceCrossfadeShortens(t *testing.T) {
	st := loadStore(t, sample.FullCounts)
	opts := noFade()
	opts.Splice.Fade = time.Millisecond
	n := splice.FadeSamples(10, 10, testRate, opts.Splice.Fade)
	if n == 0 {
		t.Fatal("fade too short for the test")
	}

	phrase, err := announce(st, time.Date(2024, 2, 24, 13, 41, 0, 0, time.Local), opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := 50 - 4*n; len(phrase.Frames) != want {
		t.Errorf("phrase has %d frames, want %d", len(phrase.Frames), want)
	}
}

func TestComponentIndex(t *testing.T) {
	ix := timeidx.FromTime(time.Date(2024, 2, 24, 13, 41, 0, 0, time.Local))
	for cat, want := range map[string]int{
		sample.Days:        23,
		sample.Months:      1,
		sample.Hours:       12,
		sample.Minutes:     40,
		sample.MinuteNouns: 2,
	} {
		got, err := componentIndex(ix, cat)
		if err != nil || got != want {
			t.Errorf("componentIndex(%s) = %d, %v; want %d", cat, got, err, want)
		}
	}
	if _, err := componentIndex(ix, "minute_noun"); !errors.Is(err, sample.ErrUnknownCategory) {
		t.Errorf("unknown category err = %v, want ErrUnknownCategory", err)
	}
}
