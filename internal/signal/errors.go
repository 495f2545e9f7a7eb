package signal

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when the schema source does not exist. It also
	// matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("signal schema not found: %w", fs.ErrNotExist)

	// ErrInvalidSchema is the root of every schema validation failure.
	ErrInvalidSchema = errors.New("invalid signal schema")

	// ErrEmptySchema is returned when a store is built over no signals.
	ErrEmptySchema = errors.New("signal schema is empty")

	// ErrUnknownSignal is returned for any name not declared in the schema.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrValueType is returned when an update value cannot be read as a number.
	ErrValueType = errors.New("signal value must be numeric")
)

// ConfigError describes a single schema rule violation.
type ConfigError struct {
	Signal string // empty for document-level errors
	Rule   string
}

func (e *ConfigError) Error() string {
	if e.Signal == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidSchema, e.Rule)
	}
	return fmt.Sprintf("%s: signal '%s': %s", ErrInvalidSchema, e.Signal, e.Rule)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidSchema
}

func configErr(signal, format string, args ...any) error {
	return &ConfigError{Signal: signal, Rule: fmt.Sprintf(format, args...)}
}

func unknownSignal(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSignal, name)
}
