package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"pitdash.klederson.com/internal/app"
	"pitdash.klederson.com/internal/config"
	"pitdash.klederson.com/internal/lap"
	"pitdash.klederson.com/internal/signal"
	"pitdash.klederson.com/internal/source"
)

var (
	flagSchema   string
	flagSource   string
	flagFPS      int
	flagLogFile  string
	flagLogLevel string
	flagBeacon   bool
	flagCheck    bool
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "pitdash",
		Short: "Pit Dash - terminal telemetry dashboard with lap timing",
		Long: `Pit Dash shows the latest value of each vehicle signal declared in a
signal schema, marking values stale once they age past their threshold, and
tracks lap time, personal best and live delta to the best lap.

The schema is read from --schema (YAML or TOML) or the built-in default.
Only the simulated vehicle source is available at the moment.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, env)
		},
	}

	rootCmd.Flags().StringVar(&flagSchema, "schema", env.SchemaPath, "Signal schema file (.yaml, .yml or .toml); empty uses the built-in schema")
	rootCmd.Flags().StringVar(&flagSource, "source", "mock", "Signal source (mock)")
	rootCmd.Flags().IntVar(&flagFPS, "fps", env.FPS, "Dashboard refresh rate")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", env.LogFile, "Write logs to this file (logs are discarded when empty)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", env.LogLevel.String(), "Log level (debug, info, warn, error)")
	rootCmd.Flags().DurationVar(&env.DemoLap, "demo-lap", env.DemoLap, "Nominal lap period of the simulated beacon")
	rootCmd.Flags().BoolVar(&flagBeacon, "beacon", true, "Simulate a timing beacon that completes laps automatically")
	rootCmd.Flags().BoolVar(&flagCheck, "check", false, "Validate the schema, print it and exit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, env config.Env) error {
	env.FPS = flagFPS
	if err := env.Validate(); err != nil {
		return err
	}
	if err := env.LogLevel.UnmarshalText([]byte(flagLogLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagSource != "mock" {
		return fmt.Errorf("unsupported source %q: only \"mock\" is available", flagSource)
	}

	schema, err := loadSchema(flagSchema)
	if err != nil {
		return err
	}

	if flagCheck {
		printSchema(cmd.OutOrStdout(), schema)
		return nil
	}

	logger, closeLog, err := newLogger(flagLogFile, env.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("schema loaded", "signals", schema.Len(), "path", flagSchema)

	store, err := signal.NewStore(schema, signal.WithLogger(logger))
	if err != nil {
		return err
	}
	timer := lap.NewTimer(lap.WithLogger(logger))

	opts := app.Options{
		Store:    store,
		Timer:    timer,
		Producer: source.NewMock(store, source.WithInterval(env.MockInterval), source.WithMockLogger(logger)),
		Source:   flagSource,
		FPS:      env.FPS,
	}
	if flagBeacon {
		opts.Trigger = source.NewBeacon(timer, env.DemoLap, config.DemoLapJitterPct, logger)
	}
	model := app.New(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(env.FPS),
	)

	if err := model.StartSources(context.Background()); err != nil {
		return err
	}
	defer model.StopSources()

	_, err = p.Run()
	return err
}

func loadSchema(path string) (*signal.Schema, error) {
	if path == "" {
		return signal.Parse(config.DefaultSchema, signal.FormatYAML)
	}
	return signal.LoadFile(path)
}

func printSchema(w io.Writer, schema *signal.Schema) {
	fmt.Fprintf(w, "%d signals\n", schema.Len())
	for _, name := range schema.Names() {
		d, _ := schema.Lookup(name)
		fmt.Fprintf(w, "  %-12s %-8s [%g, %g] stale after %s  %s\n",
			d.Name, d.Unit, d.Min, d.Max, d.StaleAfter, d.Description)
	}
}

// newLogger returns a tint logger writing to path, or a discarding logger when
// path is empty. The terminal belongs to the dashboard.
func newLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:   level,
		NoColor: true,
	}))
	return logger, func() { _ = f.Close() }, nil
}
