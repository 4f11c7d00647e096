// Package sample holds decoded word recordings and the store that loads them
// from a category directory tree.
package sample

import "time"

// Format describes the PCM layout of a Sample. SampleWidth is in bytes.
type Format struct {
	Channels    int
	SampleWidth int
	FrameRate   int
}

// Sample is one decoded clip. Frames are signed 16-bit PCM. A Sample is never
// modified after construction; derived samples get their own Frames slice.
type Sample struct {
	Format Format
	Frames []int16
	Path   string
}

// Duration is the playback length of s.
func (s Sample) Duration() time.Duration {
	if s.Format.FrameRate == 0 || s.Format.Channels == 0 {
		return 0
	}
	n := len(s.Frames) / s.Format.Channels
	return time.Duration(n) * time.Second / time.Duration(s.Format.FrameRate)
}

// Category is an ordered group of recordings selected by one time component.
type Category []Sample

const (
	Days        = "days"
	Months      = "months"
	Hours       = "hours"
	Minutes     = "minutes"
	MinuteNouns = "minute_nouns"
)

// Categories lists the directories an announcement draws from, in phrase order.
var Categories = []string{Days, Months, Hours, Minutes, MinuteNouns}

const Ext = ".wav"
