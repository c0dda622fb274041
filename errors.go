package configurables

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound indicates a mandatory config file source whose
	// path does not exist. Optional file sources degrade to an empty
	// mapping instead of returning this.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyOrder indicates a resolution order with no sources.
	ErrEmptyOrder = errors.New("resolution order is empty")

	// ErrDuplicateSource indicates a resolution order listing the same
	// source kind twice.
	ErrDuplicateSource = errors.New("duplicate source in resolution order")
)

// CoercionError reports a raw string value that does not satisfy a
// field's declared type.
type CoercionError struct {
	Field string
	Raw   string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce field %q value %q: %v", e.Field, e.Raw, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field that no source or override
// supplied a value for.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q was not supplied by any source", e.Field)
}

// UnknownFormatError reports a file extension or format tag with no
// registered codec.
type UnknownFormatError struct {
	Tag string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("no format codec registered for %q", e.Tag)
}

// UnknownSourceError reports a resolution order referencing a source
// kind with no bound interpreter.
type UnknownSourceError struct {
	Kind Source
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("resolution order references unknown source %q", string(e.Kind))
}

// UnknownFlagError reports an unrecognized command-line flag under
// strict argument parsing.
type UnknownFlagError struct {
	Flag string
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown command-line flag --%s", e.Flag)
}
