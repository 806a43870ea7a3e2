// Package obslog is the host process's structured logger. edgectl
// wraps zerolog behind a private `smplog` facade (internal/logging);
// smplog's own source isn't in the retrieval pack (only its go.mod),
// so this package implements the same Config/Configure/env-override
// shape directly against zerolog, the library smplog itself wraps.
package obslog

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "LF_LOG_LEVEL"
	EnvLogTimestamp = "LF_LOG_TIMESTAMP"
	EnvLogNoColor   = "LF_LOG_NOCOLOR"
	EnvLogBypass    = "LF_LOG_BYPASS"
)

// Profile selects the default Config a binary or test run starts from.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the tunable surface of the global logger.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool // true discards all output, for quiet test runs
}

// DefaultConfig returns edgectl's runtime defaults: info level, timestamps
// on, color on, not bypassed.
func DefaultConfig() Config {
	return Config{Level: zerolog.InfoLevel, Timestamp: true}
}

var configureOnce sync.Once

// ConfigureRuntime installs the runtime-profile logger for component,
// applying env overrides. Safe to call more than once; only the first
// call takes effect.
func ConfigureRuntime(component string) {
	Configure(ProfileRuntime, component)
}

// ConfigureTests installs the test-profile logger (debug level, no
// timestamps) for component.
func ConfigureTests(component string) {
	Configure(ProfileTest, component)
}

// Configure installs the global logger once, per profile defaults
// overridden by LF_LOG_* environment variables.
func Configure(profile Profile, component string) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		install(cfg, component)
	})
}

func defaultConfig(profile Profile) Config {
	cfg := DefaultConfig()
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	}
	return cfg
}

func install(cfg Config, component string) {
	var w io.Writer = os.Stdout
	if cfg.Bypass {
		w = io.Discard
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339, NoColor: cfg.NoColor}
	}

	zerolog.SetGlobalLevel(cfg.Level)
	ctx := zerolog.New(w).With().Str("component", component)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	log.Logger = ctx.Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogBypass)); ok {
		cfg.Bypass = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
