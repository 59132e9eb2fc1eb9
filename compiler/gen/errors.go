package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidDescriptor indicates a descriptor that violates its contract.
	ErrInvalidDescriptor = errors.New("variantgen: invalid descriptor")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("variantgen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("variantgen: code generation failed")
	// ErrViolation indicates a structural impossibility in the requested features.
	ErrViolation = errors.New("variantgen: feature violation")
)

// DescriptorError represents a descriptor that cannot be constructed.
type DescriptorError struct {
	Type    string // Variant type name
	Member  string // Key, case or item name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	var b strings.Builder
	b.WriteString("variantgen: descriptor error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DescriptorError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DescriptorError.
func (e *DescriptorError) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

// NewDescriptorError creates a new DescriptorError.
func NewDescriptorError(typeName, member, message string, cause error) *DescriptorError {
	return &DescriptorError{
		Type:    typeName,
		Member:  member,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("variantgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("variantgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "resolve", "emit", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("variantgen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ViolationKind is the machine-readable kind of a Violation.
type ViolationKind uint8

// Violation kinds reported by the generators.
const (
	_ ViolationKind = iota
	// ViolationOperatorOnUnion is reported for comparison or arithmetic
	// operators requested on a case-based type.
	ViolationOperatorOnUnion
	// ViolationOperatorUnsupported is reported for operators the key type
	// does not define.
	ViolationOperatorUnsupported
	// ViolationDispatchWithoutCases is reported for dispatch requested on a
	// type without cases or items.
	ViolationDispatchWithoutCases
	// ViolationDuplicateCaseName is reported for cases or items whose names
	// collide after normalization.
	ViolationDuplicateCaseName
	// ViolationComparerUnsupported is reported for a comparer that cannot
	// apply to the key or payload types.
	ViolationComparerUnsupported
	// ViolationNotComparable is reported for equality or hashing of a
	// type-parameter payload lacking the comparable constraint.
	ViolationNotComparable
)

var violationNames = [...]string{
	ViolationOperatorOnUnion:      "operator-on-union",
	ViolationOperatorUnsupported:  "operator-unsupported",
	ViolationDispatchWithoutCases: "dispatch-without-cases",
	ViolationDuplicateCaseName:    "duplicate-case-name",
	ViolationComparerUnsupported:  "comparer-unsupported",
	ViolationNotComparable:        "not-comparable",
}

// String returns the name of the violation kind.
func (k ViolationKind) String() string {
	if int(k) < len(violationNames) && violationNames[k] != "" {
		return violationNames[k]
	}
	return fmt.Sprintf("ViolationKind(%d)", k)
}

// Violation is a structural impossibility: a feature that was requested but
// cannot be generated for a type. The feature produces no output; the other
// features of the type are not affected.
type Violation struct {
	Type    string        // Qualified name of the offending type
	Kind    ViolationKind // Machine-readable kind
	Option  string        // Option that requested the feature
	Message string
}

// Error implements the error interface.
func (e *Violation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variantgen: %s", e.Kind)
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Option != "" {
		fmt.Fprintf(&b, " (option %s)", e.Option)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for Violation.
func (e *Violation) Is(target error) bool {
	return target == ErrViolation
}

// NewViolation creates a new Violation.
func NewViolation(d *TypeDescriptor, kind ViolationKind, option, message string) *Violation {
	return &Violation{
		Type:    d.QualifiedName(),
		Kind:    kind,
		Option:  option,
		Message: message,
	}
}

// IsDescriptorError reports whether the error is a DescriptorError.
func IsDescriptorError(err error) bool {
	var descErr *DescriptorError
	return errors.As(err, &descErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsViolation reports whether the error is a Violation.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
