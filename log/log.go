package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	dir      string
)

const diagFileName = "diagnostics_log.txt"

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absPath(flagPath)
	}

	// Priority 2: SAYTIME_LOG_PATH environment variable
	if envPath := os.Getenv("SAYTIME_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// consoleWriter mirrors warnings and errors to the terminal so the user sees
// skipped files without opening the diagnostics log.
func consoleWriter(out io.Writer) zerolog.LevelWriter {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	cw := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}
	return &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: cw},
		Level:  zerolog.WarnLevel,
	}
}

// Init opens the diagnostics file in Dir() and routes warnings to console.
// A nil console disables mirroring.
func Init(console io.Writer) error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error
	diagPath := filepath.Join(dir, diagFileName)
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	fileWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	var w io.Writer = fileWriter
	if console != nil {
		w = zerolog.MultiLevelWriter(fileWriter, consoleWriter(console))
	}
	diagLog = zerolog.New(w).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

// InitConsole is the fallback when the log directory is unusable: only
// warnings and errors reach the console, nothing is persisted.
func InitConsole(console io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	pid = os.Getpid()
	diagLog = zerolog.New(consoleWriter(console)).With().Timestamp().Logger()
	logReady = true
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SampleSkipped(path string, err error) {
	if !logReady {
		return
	}
	diagLog.Warn().
		Str("path", path).
		Err(err).
		Msg("sample skipped")
}

func StoreLoaded(category string, count, skipped int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("category", category).
		Int("count", count).
		Int("skipped", skipped).
		Msg("category loaded")
}

type AnnouncementData struct {
	At         time.Time
	Day        int
	Month      int
	Hour       int
	Minute     int
	MinuteNoun int
	Frames     int
	FrameRate  int
	BuildMs    float64
}

func Announcement(a AnnouncementData) {
	if !logReady {
		return
	}
	var lengthS float64
	if a.FrameRate > 0 {
		lengthS = float64(a.Frames) / float64(a.FrameRate)
	}
	diagLog.Info().
		Time("at", a.At).
		Int("day", a.Day).
		Int("month", a.Month).
		Int("hour", a.Hour).
		Int("minute", a.Minute).
		Int("minute_noun", a.MinuteNoun).
		Int("frames", a.Frames).
		Float64("audio_s", lengthS).
		Float64("build_ms", a.BuildMs).
		Msg("announcement")
}

func Playback(device string, audioS, totalMs float64, err error) {
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if err != nil {
		ev = diagLog.Error().Err(err)
	}
	ev.Str("device", device).
		Float64("audio_s", audioS).
		Float64("total_ms", totalMs).
		Msg("playback")
}

func Renamed(from, to string, collision bool) {
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if collision {
		ev = diagLog.Warn().Bool("overwrote", true)
	}
	ev.Str("from", from).
		Str("to", to).
		Msg("renamed")
}
