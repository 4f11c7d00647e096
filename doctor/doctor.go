package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"saytime/audio"
	"saytime/beep"
	"saytime/sample"
)

// required is the smallest category size that serves every timestamp once
// hour 0 and minute 0 wrap to the last recording.
var required = map[string]int{
	sample.Days:        31,
	sample.Months:      12,
	sample.Hours:       23,
	sample.Minutes:     59,
	sample.MinuteNouns: 3,
}

type Options struct {
	Root  string
	Order sample.Order
	// Audio is nil when no sound server could be reached.
	Audio audio.Context
	// PlayTest plays the chime on the default output.
	PlayTest bool
}

type report struct {
	w                io.Writer
	pass, warn, fail lipgloss.Style
	failed           bool
	step, steps      int
}

func newReport(w io.Writer, steps int) *report {
	r := lipgloss.NewRenderer(w)
	return &report{
		w:     w,
		pass:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		steps: steps,
	}
}

func (r *report) section(title string) {
	r.step++
	fmt.Fprintf(r.w, "\n[%d/%d] %s\n", r.step, r.steps, title)
}

func (r *report) Pass(format string, args ...any) {
	fmt.Fprintf(r.w, "  %s: %s\n", r.pass.Render("PASS"), fmt.Sprintf(format, args...))
}

func (r *report) Warn(format string, args ...any) {
	fmt.Fprintf(r.w, "  %s: %s\n", r.warn.Render("WARN"), fmt.Sprintf(format, args...))
}

func (r *report) Fail(format string, args ...any) {
	r.failed = true
	fmt.Fprintf(r.w, "  %s: %s\n", r.fail.Render("FAIL"), fmt.Sprintf(format, args...))
}

// Run checks a sample tree and the playback side and returns an exit code
// (0=no failures, 1=any fail). Warnings do not fail the run.
func Run(w io.Writer, opts Options) int {
	fmt.Fprintln(w, "saytime doctor - sample and playback diagnostics")
	fmt.Fprintln(w, "================================================")

	r := newReport(w, 4)
	if st := checkSamples(r, opts); st != nil {
		checkOrder(r, opts)
	} else {
		r.section("Category order")
		r.Warn("skipped: samples did not load")
	}
	checkPlayback(r, opts)

	fmt.Fprintln(w)
	if r.failed {
		fmt.Fprintln(w, "Some checks failed. See details above.")
		return 1
	}
	fmt.Fprintln(w, "All checks passed!")
	return 0
}

func checkSamples(r *report, opts Options) *sample.Store {
	r.section("Sample directories")
	if _, err := os.ReadDir(opts.Root); err != nil {
		r.Fail("cannot read %s: %v", opts.Root, err)
		r.section("Sample format")
		r.Warn("skipped")
		return nil
	}
	r.Pass("root %s", opts.Root)

	st, err := sample.Load(opts.Root, sample.Categories, sample.LoadOptions{Order: opts.Order})
	if err != nil && !errors.Is(err, sample.ErrFormatMismatch) {
		r.Fail("%v", err)
		r.section("Sample format")
		r.Warn("skipped")
		return nil
	}
	if st != nil {
		for _, name := range sample.Categories {
			reportCoverage(r, name, st.Len(name))
		}
		for _, s := range st.Skipped {
			r.Warn("skipped %s: %v", s.Path, s.Err)
		}
	}

	r.section("Sample format")
	if err != nil {
		r.Fail("%v", err)
		return nil
	}
	f := st.Format
	r.Pass("all samples %d Hz, %d-bit, %d channel(s)", f.FrameRate, f.SampleWidth*8, f.Channels)
	return st
}

func reportCoverage(r *report, name string, n int) {
	need := required[name]
	switch {
	case n == 0:
		r.Fail("%s: no usable recordings", name)
	case n < need:
		r.Warn("%s: %d recordings, %d needed; %s", name, n, need, unreachable(name, n))
	default:
		r.Pass("%s: %d recordings", name, n)
	}
}

// unreachable describes the timestamps that would fail with n recordings.
func unreachable(name string, n int) string {
	switch name {
	case sample.Days:
		return fmt.Sprintf("days %d-31 cannot be announced", n+1)
	case sample.Months:
		return fmt.Sprintf("months %d-12 cannot be announced", n+1)
	case sample.Hours:
		return fmt.Sprintf("hours %d-23 cannot be announced", n+1)
	case sample.Minutes:
		return fmt.Sprintf("minutes %d-59 cannot be announced", n+1)
	default:
		return "some minute forms cannot be announced"
	}
}

func checkOrder(r *report, opts Options) {
	r.section("Category order")
	clean := true
	for _, name := range sample.Categories {
		dir := filepath.Join(opts.Root, name)
		got, err := sample.ListWAV(dir, opts.Order)
		if err != nil {
			r.Fail("%v", err)
			clean = false
			continue
		}
		natural, _ := sample.ListWAV(dir, sample.OrderNatural)
		if !slices.Equal(got, natural) {
			clean = false
			r.Warn("%s: %s order differs from numbered order (first: %s); use -order natural if files are numbered",
				name, opts.Order, strings.Join(got[:min(3, len(got))], ", "))
		}
	}
	if clean {
		r.Pass("%s order matches numbered order", opts.Order)
	}
}

func checkPlayback(r *report, opts Options) {
	r.section("Playback")
	if opts.Audio == nil {
		r.Warn("no sound server available; use -out to write the announcement to a file")
		return
	}
	devices, err := opts.Audio.Devices()
	if err != nil {
		r.Fail("cannot list devices: %v", err)
		return
	}
	if len(devices) == 0 {
		r.Warn("no output devices found; playback uses the system default")
	} else {
		for _, d := range devices {
			fmt.Fprintf(r.w, "    %s\n", d.Name)
		}
		r.Pass("%d output device(s)", len(devices))
	}

	if !opts.PlayTest {
		return
	}
	chime := beep.Chime(sample.Format{Channels: 1, SampleWidth: 2, FrameRate: 44100})
	if err := audio.Play(context.Background(), opts.Audio, nil, chime); err != nil {
		r.Fail("test chime: %v", err)
		return
	}
	r.Pass("test chime played")
}
