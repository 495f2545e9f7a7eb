// Package signal holds the vehicle signal catalog and the concurrent store of
// the latest sample per signal.
package signal

import (
	"fmt"
	"time"
)

// Definition is the physical description of one signal. Immutable once loaded.
type Definition struct {
	Name        string
	Unit        string
	Min         float64
	Max         float64
	StaleAfter  time.Duration
	Description string
}

// Fraction maps v onto [0, 1] across the definition's range, clamping values
// outside it.
func (d Definition) Fraction(v float64) float64 {
	f := (v - d.Min) / (d.Max - d.Min)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// InRange reports whether v lies within [Min, Max].
func (d Definition) InRange(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// Schema is the validated, read-only catalog of signals. It keeps declaration
// order for display.
type Schema struct {
	defs  map[string]Definition
	names []string
}

// NewSchema builds a schema from already validated definitions. Each definition
// is checked again so a Schema can never hold an invalid entry.
func NewSchema(defs ...Definition) (*Schema, error) {
	if len(defs) == 0 {
		return nil, configErr("", "'signals' must be a non-empty mapping")
	}

	s := &Schema{
		defs:  make(map[string]Definition, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for _, d := range defs {
		if err := checkDefinition(d); err != nil {
			return nil, err
		}
		if _, dup := s.defs[d.Name]; dup {
			return nil, configErr(d.Name, "declared more than once")
		}
		s.defs[d.Name] = d
		s.names = append(s.names, d.Name)
	}
	return s, nil
}

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (Definition, bool) {
	d, ok := s.defs[name]
	return d, ok
}

// Definition returns the definition for name or ErrUnknownSignal.
func (s *Schema) Definition(name string) (Definition, error) {
	d, ok := s.defs[name]
	if !ok {
		return Definition{}, unknownSignal(name)
	}
	return d, nil
}

// Names returns signal names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of signals.
func (s *Schema) Len() int {
	return len(s.names)
}

func (s *Schema) String() string {
	return fmt.Sprintf("Schema(%d signals)", len(s.names))
}
