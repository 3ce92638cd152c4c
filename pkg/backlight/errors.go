package backlight

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID       = errors.New("invalid device id")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnsupported     = errors.New("operation not supported")
	// ErrZeroRange is returned when a device reports a max brightness of 0,
	// leaving no value the controller could write.
	ErrZeroRange = errors.New("device reports zero max brightness")
)

// IOError is an open, read, write or close failure on a backing file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports file contents that are not a non-negative integer.
type ParseError struct {
	Path    string
	Content string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %q is not a non-negative integer", e.Path, e.Content)
}

type ArgumentError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be in [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

type UnsupportedError struct {
	Kind Kind
	Op   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s backend does not implement it", e.Op, e.Kind)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// NotFoundError wraps the I/O failure that showed a device directory is
// missing.
type NotFoundError struct {
	ID  string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("backlight device %q not found: %v", e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrDeviceNotFound }
