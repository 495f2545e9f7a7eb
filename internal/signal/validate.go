package signal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxStaleSeconds keeps stale_after_s representable as a time.Duration.
const maxStaleSeconds = float64(math.MaxInt64) / float64(time.Second)

// rawSignal is a signal entry as read from a schema document, before any
// domain rule has been applied. Field values keep whatever scalar type the
// decoder produced.
type rawSignal struct {
	Name        string
	Unit        any
	Min         any
	Max         any
	StaleAfterS any
	Description any
}

func rawFromFields(name string, fields map[string]any) rawSignal {
	return rawSignal{
		Name:        name,
		Unit:        fields["unit"],
		Min:         fields["min"],
		Max:         fields["max"],
		StaleAfterS: fields["stale_after_s"],
		Description: fields["description"],
	}
}

// validateSignal turns a raw entry into a Definition or a *ConfigError naming
// the signal and the rule it broke.
func validateSignal(raw rawSignal) (Definition, error) {
	name := raw.Name

	unit, ok := scalarString(raw.Unit)
	if !ok || unit == "" {
		return Definition{}, configErr(name, "missing non-empty 'unit'")
	}

	vmin, err := finiteField(name, "min", raw.Min)
	if err != nil {
		return Definition{}, err
	}
	vmax, err := finiteField(name, "max", raw.Max)
	if err != nil {
		return Definition{}, err
	}
	staleS, err := finiteField(name, "stale_after_s", raw.StaleAfterS)
	if err != nil {
		return Definition{}, err
	}

	if vmax <= vmin {
		return Definition{}, configErr(name, "max must be > min (min=%g, max=%g)", vmin, vmax)
	}
	if staleS <= 0 {
		return Definition{}, configErr(name, "stale_after_s must be > 0 (got %g)", staleS)
	}
	if staleS > maxStaleSeconds {
		return Definition{}, configErr(name, "stale_after_s is too large (got %g)", staleS)
	}
	staleAfter := time.Duration(staleS * float64(time.Second))
	if staleAfter <= 0 {
		return Definition{}, configErr(name, "stale_after_s must be > 0 at nanosecond resolution (got %g)", staleS)
	}

	desc, ok := scalarString(raw.Description)
	if !ok {
		return Definition{}, configErr(name, "'description' must be a string")
	}

	return Definition{
		Name:        name,
		Unit:        unit,
		Min:         vmin,
		Max:         vmax,
		StaleAfter:  staleAfter,
		Description: desc,
	}, nil
}

// checkDefinition re-applies the domain rules to a typed Definition.
func checkDefinition(d Definition) error {
	switch {
	case d.Name == "":
		return configErr("", "signal name must be non-empty")
	case strings.TrimSpace(d.Unit) == "":
		return configErr(d.Name, "missing non-empty 'unit'")
	case !isFinite(d.Min) || !isFinite(d.Max):
		return configErr(d.Name, "min and max must be finite numbers")
	case d.Max <= d.Min:
		return configErr(d.Name, "max must be > min (min=%g, max=%g)", d.Min, d.Max)
	case d.StaleAfter <= 0:
		return configErr(d.Name, "stale_after_s must be > 0")
	}
	return nil
}

func finiteField(signal, field string, v any) (float64, error) {
	if v == nil {
		return 0, configErr(signal, "missing numeric '%s'", field)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, configErr(signal, "'%s' must be numeric (got %v)", field, v)
	}
	if !isFinite(f) {
		return 0, configErr(signal, "'%s' must be a finite number (got %v)", field, f)
	}
	return f, nil
}

// toFloat reads numbers and numeric strings. Booleans are not numbers here.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// scalarString renders a scalar as trimmed text. nil is the empty string;
// mappings and sequences are rejected.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(s), true
	case map[string]any, []any:
		return "", false
	}
	return strings.TrimSpace(fmt.Sprint(v)), true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
