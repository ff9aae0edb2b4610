package ramlerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the RAML source could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrInclude indicates an included file or library failed to load.
	ErrInclude = errors.New("include error")

	// ErrTypeReference indicates a named type reference failure.
	ErrTypeReference = errors.New("type reference error")

	// ErrCircularType indicates a type inherits from itself, directly or transitively.
	ErrCircularType = errors.New("circular type reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to load a RAML document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IncludeError represents a failure to load an !include target or a uses library.
type IncludeError struct {
	// Target is the include path as written in the source
	Target string
	// Alias is the library alias for uses entries (empty for !include)
	Alias string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IncludeError) Error() string {
	msg := "include error"
	if e.Alias != "" {
		msg = "library " + e.Alias
	}
	if e.Target != "" {
		msg += ": " + e.Target
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IncludeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IncludeError) Is(target error) bool {
	return target == ErrInclude
}

// TypeReferenceError represents a named type reference that could not be
// resolved against the type registry.
type TypeReferenceError struct {
	// Ref is the reference as written, e.g. "lib.User"
	Ref string
	// Library is the library alias part of Ref (empty for root types)
	Library string
	// IsCircular is true when the reference closes an inheritance cycle
	IsCircular bool
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *TypeReferenceError) Error() string {
	msg := "type reference error"
	if e.IsCircular {
		msg = "circular type reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrTypeReference, and ErrCircularType when IsCircular is set.
func (e *TypeReferenceError) Is(target error) bool {
	if target == ErrTypeReference {
		return true
	}
	return target == ErrCircularType && e.IsCircular
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
