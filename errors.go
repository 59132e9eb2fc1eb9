package variantgen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned (or panicked with) by generated code.
var (
	// ErrParse is matched by every ParseError.
	ErrParse = errors.New("variantgen: parse failed")

	// ErrUnknownCase is matched by every UnknownCaseError.
	ErrUnknownCase = errors.New("variantgen: unknown case")

	// ErrNilKey is matched by every NilKeyError.
	ErrNilKey = errors.New("variantgen: nil key")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("variantgen: validation failed")
)

// ParseError is returned by generated Parse functions and UnmarshalText methods.
type ParseError struct {
	Type  string // Variant type name
	Input string // Rejected input
	Err   error  // Underlying error, if any
}

// Error returns the error string.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("variantgen: cannot parse %q as %s: %v", e.Input, e.Type, e.Err)
	}
	return fmt.Sprintf("variantgen: cannot parse %q as %s", e.Input, e.Type)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ParseError.
func (e *ParseError) Is(err error) bool {
	return err == ErrParse
}

// NewParseError returns a new ParseError.
func NewParseError(typ, input string, err error) *ParseError {
	return &ParseError{Type: typ, Input: input, Err: err}
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var e *ParseError
	return errors.As(err, &e)
}

// UnknownCaseError is panicked by generated dispatch methods when the value
// holds no case, which only happens for the zero value of a union.
type UnknownCaseError struct {
	Type  string
	Index int
}

// Error returns the error string.
func (e *UnknownCaseError) Error() string {
	return fmt.Sprintf("variantgen: %s holds unknown case index %d", e.Type, e.Index)
}

// Is reports whether the target error matches UnknownCaseError.
func (e *UnknownCaseError) Is(err error) bool {
	return err == ErrUnknownCase
}

// NewUnknownCaseError returns a new UnknownCaseError.
func NewUnknownCaseError(typ string, index int) *UnknownCaseError {
	return &UnknownCaseError{Type: typ, Index: index}
}

// NilKeyError is panicked by generated arithmetic operators that receive an
// absent reference-typed key.
type NilKeyError struct {
	Type string
	Op   string
}

// Error returns the error string.
func (e *NilKeyError) Error() string {
	return fmt.Sprintf("variantgen: nil key operand for %s.%s", e.Type, e.Op)
}

// Is reports whether the target error matches NilKeyError.
func (e *NilKeyError) Is(err error) bool {
	return err == ErrNilKey
}

// NewNilKeyError returns a new NilKeyError.
func NewNilKeyError(typ, op string) *NilKeyError {
	return &NilKeyError{Type: typ, Op: op}
}

// ValidationError wraps the error of a user-supplied Validate hook called by
// generated factories.
type ValidationError struct {
	Type string
	Err  error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("variantgen: invalid %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ValidationError.
func (e *ValidationError) Is(err error) bool {
	return err == ErrValidation
}

// NewValidationError returns a new ValidationError, or nil if err is nil.
func NewValidationError(typ string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Type: typ, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
