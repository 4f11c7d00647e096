// Package timeidx maps a timestamp to the recording indices of each spoken
// component.
package timeidx

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrZeroComponent = errors.New("hour or minute is zero")

// Indices are zero-based positions into the day, month, hour, minute and
// minute-noun categories. Hour and Minute are -1 at hour 0 and minute 0.
type Indices struct {
	Day        int
	Month      int
	Hour       int
	Minute     int
	MinuteNoun int
}

// FromTime computes the indices for t.
func FromTime(t time.Time) Indices {
	return Indices{
		Day:        t.Day() - 1,
		Month:      int(t.Month()) - 1,
		Hour:       t.Hour() - 1,
		Minute:     t.Minute() - 1,
		MinuteNoun: MinuteNoun(t.Minute()),
	}
}

// MinuteNoun selects the grammatical form of the word "minute" for a raw
// minute count: 2 when the last digit is 1, 1 for a last digit of 2-4 outside
// the teens, 0 otherwise. The last-digit-1 rule wins over the teens guard.
func MinuteNoun(minute int) int {
	switch last := minute % 10; {
	case last == 1:
		return 2
	case last >= 2 && last <= 4 && (minute/10)%10 != 1:
		return 1
	default:
		return 0
	}
}

// ZeroPolicy decides what happens at hour 0 and minute 0, where the index
// underflows to -1.
type ZeroPolicy int

const (
	// ZeroWrap keeps -1, which selects the last recording of the category.
	ZeroWrap ZeroPolicy = iota
	// ZeroStrict rejects a -1 hour or minute index.
	ZeroStrict
)

func (p ZeroPolicy) String() string {
	if p == ZeroStrict {
		return "strict"
	}
	return "wrap"
}

func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch strings.ToLower(s) {
	case "", "wrap":
		return ZeroWrap, nil
	case "strict":
		return ZeroStrict, nil
	}
	return ZeroWrap, fmt.Errorf("unknown zero policy %q (use wrap or strict)", s)
}

// Validate applies p to the indices.
func (ix Indices) Validate(p ZeroPolicy) error {
	if p != ZeroStrict {
		return nil
	}
	if ix.Hour < 0 {
		return fmt.Errorf("%w: hour index %d", ErrZeroComponent, ix.Hour)
	}
	if ix.Minute < 0 {
		return fmt.Errorf("%w: minute index %d", ErrZeroComponent, ix.Minute)
	}
	return nil
}

var layouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"15:04",
}

// ParseAt parses a time override. A bare "15:04" is taken on the date of now.
func ParseAt(s string, now time.Time) (time.Time, error) {
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if layout == "15:04" {
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (use \"2006-01-02 15:04\", RFC3339, or \"15:04\")", s)
}
