package main

import (
	"fmt"
	"time"

	"saytime/beep"
	"saytime/log"
	"saytime/sample"
	"saytime/splice"
	"saytime/timeidx"
)

type announceOptions struct {
	Splice   splice.Options
	Tail     time.Duration
	TailPeak int16
	Chime    bool
}

// phraseOrder is the spoken order of the components.
var phraseOrder = []string{
	sample.Days,
	sample.Months,
	sample.Hours,
	sample.Minutes,
	sample.MinuteNouns,
}

func componentIndex(ix timeidx.Indices, category string) (int, error) {
	switch category {
	case sample.Days:
		return ix.Day, nil
	case sample.Months:
		return ix.Month, nil
	case sample.Hours:
		return ix.Hour, nil
	case sample.Minutes:
		return ix.Minute, nil
	case sample.MinuteNouns:
		return ix.MinuteNoun, nil
	}
	return 0, fmt.Errorf("%w: %s", sample.ErrUnknownCategory, category)
}

// announce builds the spoken phrase for at from the recordings in st.
func announce(st *sample.Store, at time.Time, opts announceOptions) (sample.Sample, error) {
	start := time.Now()
	ix := timeidx.FromTime(at)

	words := make([]sample.Sample, 0, len(phraseOrder))
	for _, cat := range phraseOrder {
		i, err := componentIndex(ix, cat)
		if err != nil {
			return sample.Sample{}, err
		}
		s, err := st.Pick(cat, i)
		if err != nil {
			return sample.Sample{}, fmt.Errorf("selecting %s for %s: %w", cat, at.Format("2006-01-02 15:04"), err)
		}
		words = append(words, s)
	}

	phrase, err := opts.Splice.Fold(words)
	if err != nil {
		return sample.Sample{}, err
	}
	if opts.Chime {
		phrase = beep.Prepend(phrase)
	}
	phrase = splice.AppendTail(phrase, opts.Tail, opts.TailPeak)

	log.Announcement(log.AnnouncementData{
		At:         at,
		Day:        ix.Day,
		Month:      ix.Month,
		Hour:       ix.Hour,
		Minute:     ix.Minute,
		MinuteNoun: ix.MinuteNoun,
		Frames:     len(phrase.Frames),
		FrameRate:  phrase.Format.FrameRate,
		BuildMs:    float64(time.Since(start).Microseconds()) / 1000,
	})
	return phrase, nil
}
