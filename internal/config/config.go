package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Display
	TargetFPS   = 20  // Dashboard refresh rate
	MaxFPS      = 120 // Upper bound accepted from flags/env
	RPMBarCells = 70  // Segments in the RPM bar
	RPMRedline  = 12000.0
	LapHistory  = 5 // Completed laps shown in the lap panel
	PBFlash     = 3 * time.Second

	// Demo mode
	MockInterval     = 50 * time.Millisecond // Mock producer cadence
	DemoLapPeriod    = 45 * time.Second      // Nominal simulated lap
	DemoLapJitterPct = 0.08                  // +/- share of the period

	// App
	AppName    = "PIT-DASH"
	AppVersion = "1.0"
	EnvPrefix  = "PITDASH_"
)

// DefaultSchema is used when no schema file is configured.
//
//go:embed signals.yaml
var DefaultSchema []byte

// Env holds settings read from the environment (and an optional .env file).
// Command line flags take precedence over these.
type Env struct {
	SchemaPath   string
	FPS          int
	LogFile      string
	LogLevel     slog.Level
	MockInterval time.Duration
	DemoLap      time.Duration
}

// Load reads PITDASH_* variables, loading .env first if present.
func Load() (Env, error) {
	_ = godotenv.Load(".env")

	env := Env{
		SchemaPath:   strings.TrimSpace(os.Getenv(EnvPrefix + "SCHEMA")),
		FPS:          TargetFPS,
		LogFile:      strings.TrimSpace(os.Getenv(EnvPrefix + "LOG_FILE")),
		LogLevel:     slog.LevelInfo,
		MockInterval: MockInterval,
		DemoLap:      DemoLapPeriod,
	}

	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "FPS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return env, fmt.Errorf("invalid %sFPS: %w", EnvPrefix, err)
		}
		env.FPS = n
	}

	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "LOG_LEVEL")); v != "" {
		if err := env.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return env, fmt.Errorf("invalid %sLOG_LEVEL: %w", EnvPrefix, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "MOCK_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return env, fmt.Errorf("invalid %sMOCK_INTERVAL: %w", EnvPrefix, err)
		}
		env.MockInterval = d
	}

	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "DEMO_LAP")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return env, fmt.Errorf("invalid %sDEMO_LAP: %w", EnvPrefix, err)
		}
		env.DemoLap = d
	}

	return env, env.Validate()
}

// Validate checks ranges for values that may come from flags or environment.
func (e Env) Validate() error {
	if e.FPS <= 0 || e.FPS > MaxFPS {
		return fmt.Errorf("fps must be in 1..%d, got %d", MaxFPS, e.FPS)
	}
	if e.MockInterval <= 0 {
		return errors.New("mock interval must be > 0")
	}
	if e.DemoLap <= 0 {
		return errors.New("demo lap period must be > 0")
	}
	return nil
}
