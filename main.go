package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"saytime/audio"
	"saytime/config"
	"saytime/doctor"
	"saytime/log"
	"saytime/sample"
	"saytime/shutdown"
	"saytime/splice"
	"saytime/timeidx"
)

var version = "dev"

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Error(msg)
	log.Close()
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

func main() {
	cfg := config.Load()

	samplesFlag := flag.String("samples", cfg.SamplesDir, "Sample root containing days/, months/, hours/, minutes/, minute_nouns/")
	atFlag := flag.String("at", "", "Announce this time instead of now (\"2006-01-02 15:04\", RFC3339, or \"15:04\")")
	thresholdFlag := flag.Int("threshold", cfg.Threshold, "Silence threshold for trimming word edges")
	fadeFlag := flag.Duration("fade", cfg.Fade, "Crossfade length between words")
	tailFlag := flag.Duration("tail", cfg.Tail, "Length of the trailing ramp after the phrase")
	tailPeakFlag := flag.Int("tail-peak", cfg.TailPeak, "Starting amplitude of the trailing ramp (0-32767)")
	orderFlag := flag.String("order", cfg.Order, "File order within a category: listing, name, or natural")
	zeroFlag := flag.String("zero", cfg.ZeroPolicy, "Hour 0 / minute 0 handling: wrap (use last recording) or strict (fail)")
	chimeFlag := flag.Bool("chime", cfg.Chime, "Play a short tick before the phrase")
	outFlag := flag.String("out", "", "Also write the announcement to this WAV file")
	noPlayFlag := flag.Bool("noplay", false, "Do not play the announcement")
	deviceFlag := flag.String("device", cfg.Device, "Use named output device")
	setupFlag := flag.Bool("setup", false, "Select output device interactively")
	doctorFlag := flag.Bool("doctor", false, "Check samples and playback, then exit")
	logPathFlag := flag.String("logpath", cfg.LogPath, "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("saytime %s\n", version)
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	if err := log.Init(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		log.InitConsole(os.Stderr)
	}
	defer log.Close()

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	if crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	order, err := sample.ParseOrder(*orderFlag)
	if err != nil {
		fatal("%v", err)
	}
	zero, err := timeidx.ParseZeroPolicy(*zeroFlag)
	if err != nil {
		fatal("%v", err)
	}
	if *tailPeakFlag < 0 || *tailPeakFlag > 32767 {
		fatal("tail peak %d out of range 0-32767", *tailPeakFlag)
	}

	if *doctorFlag {
		actx, err := audio.NewContext()
		if err != nil {
			log.Warnf("audio context init error: %v", err)
			actx = nil
		}
		code := doctor.Run(os.Stdout, doctor.Options{
			Root:     *samplesFlag,
			Order:    order,
			Audio:    actx,
			PlayTest: !*noPlayFlag,
		})
		if actx != nil {
			actx.Close()
		}
		log.Close()
		os.Exit(code)
	}

	now := time.Now()
	at := now
	if *atFlag != "" {
		if at, err = timeidx.ParseAt(*atFlag, now); err != nil {
			fatal("%v", err)
		}
	}
	if err := timeidx.FromTime(at).Validate(zero); err != nil {
		fatal("%v", err)
	}

	st, err := sample.Load(*samplesFlag, sample.Categories, sample.LoadOptions{Order: order})
	if err != nil {
		fatal("loading samples: %v", err)
	}

	phrase, err := announce(st, at, announceOptions{
		Splice:   splice.Options{Threshold: *thresholdFlag, Fade: *fadeFlag},
		Tail:     *tailFlag,
		TailPeak: int16(*tailPeakFlag),
		Chime:    *chimeFlag,
	})
	if err != nil {
		fatal("%v", err)
	}

	if *outFlag != "" {
		if err := sample.WriteFile(*outFlag, phrase); err != nil {
			fatal("writing %s: %v", *outFlag, err)
		}
		log.Info("wrote " + *outFlag)
	}
	if *noPlayFlag {
		return
	}

	if err := play(phrase, *deviceFlag, *setupFlag); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("playback interrupted")
			return
		}
		if errors.Is(err, audio.ErrSelectionAborted) {
			log.Info("device selection aborted, nothing played")
			return
		}
		fatal("%v", err)
	}
}

// deviceSelector picks an output device interactively.
type deviceSelector func(audio.Context) (*audio.DeviceInfo, error)

func play(phrase sample.Sample, deviceName string, setup bool) error {
	actx, err := audio.NewContext()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer actx.Close()

	var selectDevice deviceSelector
	if setup {
		selectDevice = audio.SelectDevice
	}

	ctx, cancel := shutdown.Context(context.Background())
	defer cancel()
	return playOn(ctx, actx, phrase, deviceName, selectDevice)
}

// playOn resolves the output device and plays phrase. A nil selectDevice
// uses deviceName, or the system default when that is empty. Aborting the
// picker returns audio.ErrSelectionAborted without playing.
func playOn(ctx context.Context, actx audio.Context, phrase sample.Sample, deviceName string, selectDevice deviceSelector) error {
	var device *audio.DeviceInfo
	var err error
	switch {
	case selectDevice != nil:
		device, err = selectDevice(actx)
		if errors.Is(err, audio.ErrSelectionAborted) {
			return err
		}
		if err != nil {
			log.Warnf("device selection failed: %v", err)
			fmt.Fprintln(os.Stderr, "Falling back to default device")
			device = nil
		}
	case deviceName != "":
		if device, err = audio.FindDevice(actx, deviceName); err != nil {
			return err
		}
	}
	return audio.Play(ctx, actx, device, phrase)
}
