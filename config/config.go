package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the defaults for command-line flags, loaded from environment
// variables.
type Config struct {
	SamplesDir string
	LogPath    string
	Device     string

	Threshold int
	Fade      time.Duration
	Tail      time.Duration
	TailPeak  int

	Order      string // listing, name, natural
	ZeroPolicy string // wrap, strict
	Chime      bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		SamplesDir: envStr("SAYTIME_SAMPLES", "samples"),
		LogPath:    envStr("SAYTIME_LOG_PATH", ""),
		Device:     envStr("SAYTIME_DEVICE", ""),

		Threshold: envInt("SAYTIME_THRESHOLD", 75),
		Fade:      envDuration("SAYTIME_FADE", 50*time.Millisecond),
		Tail:      envDuration("SAYTIME_TAIL", 200*time.Millisecond),
		TailPeak:  envInt("SAYTIME_TAIL_PEAK", 1),

		Order:      envStr("SAYTIME_ORDER", "listing"),
		ZeroPolicy: envStr("SAYTIME_ZERO", "wrap"),
		Chime:      envBool("SAYTIME_CHIME", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("80ms") or a bare number of milliseconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Millisecond
	}
	return fallback
}
