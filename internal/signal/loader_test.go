package signal_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pitdash.klederson.com/internal/signal"
)

const validYAML = `
signals:
  rpm:
    unit: rpm
    min: 0
    max: 15000
    stale_after_s: 1.0
    description: Engine speed
  coolant:
    unit: " degC "
    min: -40
    max: 150
    stale_after_s: "2.5"
  speed:
    unit: km/h
    min: 0
    max: 300
    stale_after_s: 0.5
`

func TestParseYAML(t *testing.T) {
	schema, err := signal.Parse([]byte(validYAML), signal.FormatYAML)
	require.NoError(t, err)

	require.Equal(t, []string{"rpm", "coolant", "speed"}, schema.Names())

	rpm, ok := schema.Lookup("rpm")
	require.True(t, ok)
	require.Equal(t, signal.Definition{
		Name:        "rpm",
		Unit:        "rpm",
		Min:         0,
		Max:         15000,
		StaleAfter:  time.Second,
		Description: "Engine speed",
	}, rpm)

	coolant, err := schema.Definition("coolant")
	require.NoError(t, err)
	require.Equal(t, "degC", coolant.Unit)
	require.Equal(t, 2500*time.Millisecond, coolant.StaleAfter)
	require.Empty(t, coolant.Description)

	for _, name := range schema.Names() {
		def, _ := schema.Lookup(name)
		require.Greater(t, def.Max, def.Min)
		require.Greater(t, def.StaleAfter, time.Duration(0))
	}
}

func TestParseTOML(t *testing.T) {
	doc := `
[signals.battery]
unit = "V"
min = 10
max = 16
stale_after_s = 2

[signals.lambda]
unit = "lambda"
min = 0.5
max = 1.5
stale_after_s = 0.5
description = "Air/fuel ratio"
`
	schema, err := signal.Parse([]byte(doc), signal.FormatTOML)
	require.NoError(t, err)
	require.Equal(t, []string{"battery", "lambda"}, schema.Names())

	lambda, err := schema.Definition("lambda")
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, lambda.StaleAfter)
	require.Equal(t, "Air/fuel ratio", lambda.Description)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		signal string
	}{
		{name: "empty document", doc: ``},
		{name: "not a mapping", doc: `- a`},
		{name: "missing signals key", doc: `other: {}`},
		{name: "signals null", doc: `signals:`},
		{name: "signals empty", doc: `signals: {}`},
		{name: "signals list", doc: `signals: [rpm]`},
		{name: "entry not mapping", doc: "signals:\n  rpm: 3", signal: "rpm"},
		{name: "missing unit", doc: "signals:\n  rpm: {min: 0, max: 1, stale_after_s: 1}", signal: "rpm"},
		{name: "blank unit", doc: "signals:\n  rpm: {unit: '  ', min: 0, max: 1, stale_after_s: 1}", signal: "rpm"},
		{name: "missing min", doc: "signals:\n  rpm: {unit: rpm, max: 1, stale_after_s: 1}", signal: "rpm"},
		{name: "non-numeric max", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: lots, stale_after_s: 1}", signal: "rpm"},
		{name: "boolean stale", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: 1, stale_after_s: true}", signal: "rpm"},
		{name: "nan min", doc: "signals:\n  rpm: {unit: rpm, min: .nan, max: 1, stale_after_s: 1}", signal: "rpm"},
		{name: "infinite max", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: .inf, stale_after_s: 1}", signal: "rpm"},
		{name: "max equals min", doc: "signals:\n  rpm: {unit: rpm, min: 5, max: 5, stale_after_s: 1}", signal: "rpm"},
		{name: "max below min", doc: "signals:\n  rpm: {unit: rpm, min: 5, max: 1, stale_after_s: 1}", signal: "rpm"},
		{name: "zero stale", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: 1, stale_after_s: 0}", signal: "rpm"},
		{name: "negative stale", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: 1, stale_after_s: -1}", signal: "rpm"},
		{name: "duplicate", doc: "signals:\n  rpm: {unit: rpm, min: 0, max: 1, stale_after_s: 1}\n  rpm: {unit: rpm, min: 0, max: 2, stale_after_s: 1}", signal: "rpm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := signal.Parse([]byte(tt.doc), signal.FormatYAML)
			require.Nil(t, schema)
			require.ErrorIs(t, err, signal.ErrInvalidSchema)

			var cfgErr *signal.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			require.Equal(t, tt.signal, cfgErr.Signal)
			if tt.signal != "" {
				require.Contains(t, err.Error(), "'"+tt.signal+"'")
			}
		})
	}
}

func TestParseIsAllOrNothing(t *testing.T) {
	doc := `
signals:
  rpm: {unit: rpm, min: 0, max: 15000, stale_after_s: 1}
  speed: {unit: km/h, min: 0, max: 0, stale_after_s: 1}
`
	schema, err := signal.Parse([]byte(doc), signal.FormatYAML)
	require.Nil(t, schema)

	var cfgErr *signal.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "speed", cfgErr.Signal)
}

func TestParseTOMLRejects(t *testing.T) {
	_, err := signal.Parse([]byte(`signals = 3`), signal.FormatTOML)
	require.ErrorIs(t, err, signal.ErrInvalidSchema)

	_, err = signal.Parse([]byte("[signals]\nrpm = 4"), signal.FormatTOML)
	var cfgErr *signal.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "rpm", cfgErr.Signal)

	_, err = signal.Parse([]byte("[signals\n"), signal.FormatTOML)
	require.ErrorIs(t, err, signal.ErrInvalidSchema)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "signals.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(validYAML), 0o644))
	schema, err := signal.LoadFile(yamlPath)
	require.NoError(t, err)
	require.Equal(t, 3, schema.Len())

	tomlPath := filepath.Join(dir, "signals.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[signals.gear]\nunit = \"gear\"\nmin = 0\nmax = 6\nstale_after_s = 1\n"), 0o644))
	schema, err = signal.LoadFile(tomlPath)
	require.NoError(t, err)
	require.Equal(t, []string{"gear"}, schema.Names())

	badPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badPath, []byte("signals: {}"), 0o644))
	_, err = signal.LoadFile(badPath)
	require.ErrorIs(t, err, signal.ErrInvalidSchema)
	require.Contains(t, err.Error(), badPath)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := signal.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, signal.ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFormatForPath(t *testing.T) {
	require.Equal(t, signal.FormatTOML, signal.FormatForPath("a/b/signals.TOML"))
	require.Equal(t, signal.FormatYAML, signal.FormatForPath("signals.yml"))
	require.Equal(t, signal.FormatYAML, signal.FormatForPath("signals"))
}

func TestNewSchema(t *testing.T) {
	_, err := signal.NewSchema()
	require.ErrorIs(t, err, signal.ErrInvalidSchema)

	_, err = signal.NewSchema(signal.Definition{Name: "rpm", Unit: "rpm", Min: 1, Max: 1, StaleAfter: time.Second})
	require.ErrorIs(t, err, signal.ErrInvalidSchema)

	_, err = signal.NewSchema(signal.Definition{Name: "rpm", Unit: "rpm", Min: 0, Max: 1})
	require.ErrorIs(t, err, signal.ErrInvalidSchema)

	schema, err := signal.NewSchema(signal.Definition{Name: "rpm", Unit: "rpm", Min: 0, Max: 1, StaleAfter: time.Second})
	require.NoError(t, err)

	_, err = schema.Definition("speed")
	require.ErrorIs(t, err, signal.ErrUnknownSignal)
}

func TestDefinitionFraction(t *testing.T) {
	d := signal.Definition{Min: 10, Max: 20}
	require.InDelta(t, 0.5, d.Fraction(15), 1e-9)
	require.Equal(t, 0.0, d.Fraction(-3))
	require.Equal(t, 1.0, d.Fraction(25))
	require.True(t, d.InRange(10))
	require.False(t, d.InRange(20.5))
}
