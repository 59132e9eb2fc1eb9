package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OperatorsGeneration selects which overloads of an operator are generated.
type OperatorsGeneration uint8

const (
	// OperatorsUnspecified takes the default of the type.
	OperatorsUnspecified OperatorsGeneration = iota
	// OperatorsNone generates nothing.
	OperatorsNone
	// OperatorsDefault generates the wrapper-vs-wrapper overloads.
	OperatorsDefault
	// OperatorsDefaultWithKeyTypeOverloads also generates overloads taking
	// the bare key type on either side.
	OperatorsDefaultWithKeyTypeOverloads
)

var operatorsNames = [...]string{
	OperatorsUnspecified:                 "",
	OperatorsNone:                        "none",
	OperatorsDefault:                     "default",
	OperatorsDefaultWithKeyTypeOverloads: "default-with-key-type-overloads",
}

// String returns the name of the option value.
func (o OperatorsGeneration) String() string {
	if int(o) < len(operatorsNames) {
		return operatorsNames[o]
	}
	return fmt.Sprintf("OperatorsGeneration(%d)", o)
}

// Enabled reports whether any overload is generated.
func (o OperatorsGeneration) Enabled() bool {
	return o == OperatorsDefault || o == OperatorsDefaultWithKeyTypeOverloads
}

// MarshalText implements the encoding.TextMarshaler interface.
func (o OperatorsGeneration) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (o *OperatorsGeneration) UnmarshalText(text []byte) error {
	v, err := parseOption(string(text), operatorsNames[:])
	if err != nil {
		return err
	}
	*o = OperatorsGeneration(v)
	return nil
}

// DispatchGeneration selects which shapes of Switch/Map are generated.
type DispatchGeneration uint8

const (
	// DispatchUnspecified takes the default of the type.
	DispatchUnspecified DispatchGeneration = iota
	// DispatchNone generates nothing.
	DispatchNone
	// DispatchDefault generates the exhaustive shapes.
	DispatchDefault
	// DispatchDefaultWithPartialOverloads also generates the partial shapes
	// taking a default handler.
	DispatchDefaultWithPartialOverloads
)

var dispatchNames = [...]string{
	DispatchUnspecified:                 "",
	DispatchNone:                        "none",
	DispatchDefault:                     "default",
	DispatchDefaultWithPartialOverloads: "default-with-partial-overloads",
}

// String returns the name of the option value.
func (d DispatchGeneration) String() string {
	if int(d) < len(dispatchNames) {
		return dispatchNames[d]
	}
	return fmt.Sprintf("DispatchGeneration(%d)", d)
}

// Enabled reports whether any shape is generated.
func (d DispatchGeneration) Enabled() bool {
	return d == DispatchDefault || d == DispatchDefaultWithPartialOverloads
}

// MarshalText implements the encoding.TextMarshaler interface.
func (d DispatchGeneration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (d *DispatchGeneration) UnmarshalText(text []byte) error {
	v, err := parseOption(string(text), dispatchNames[:])
	if err != nil {
		return err
	}
	*d = DispatchGeneration(v)
	return nil
}

func parseOption(s string, values []string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range values {
		if v == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown option value %q, expect one of %s", s, strings.Join(values[1:], ", "))
}

// DefaultStateParameterName is the name of the state parameter threaded
// through dispatch handlers when none is configured.
const DefaultStateParameterName = "state"

// FeatureFlags are the raw, user-supplied options of one variant type. Every
// option is independently settable; the zero value of each option means
// "unspecified" and takes its default on Resolve.
type FeatureFlags struct {
	SkipFactoryMethods     bool `yaml:"skip_factory_methods,omitempty" msgpack:"skip_factory_methods"`
	SkipParse              bool `yaml:"skip_parse,omitempty" msgpack:"skip_parse"`
	SkipStringPatternParse bool `yaml:"skip_string_pattern_parse,omitempty" msgpack:"skip_string_pattern_parse"`
	SkipToString           bool `yaml:"skip_to_string,omitempty" msgpack:"skip_to_string"`
	SkipEqualityMethods    bool `yaml:"skip_equality_methods,omitempty" msgpack:"skip_equality_methods"`
	SkipHashMethods        bool `yaml:"skip_hash_methods,omitempty" msgpack:"skip_hash_methods"`

	EqualityOperators    OperatorsGeneration `yaml:"equality_operators,omitempty" msgpack:"equality_operators"`
	ComparisonOperators  OperatorsGeneration `yaml:"comparison_operators,omitempty" msgpack:"comparison_operators"`
	AdditionOperators    OperatorsGeneration `yaml:"addition_operators,omitempty" msgpack:"addition_operators"`
	SubtractionOperators OperatorsGeneration `yaml:"subtraction_operators,omitempty" msgpack:"subtraction_operators"`
	MultiplyOperators    OperatorsGeneration `yaml:"multiply_operators,omitempty" msgpack:"multiply_operators"`
	DivisionOperators    OperatorsGeneration `yaml:"division_operators,omitempty" msgpack:"division_operators"`

	SwitchMethods DispatchGeneration `yaml:"switch_methods,omitempty" msgpack:"switch_methods"`
	MapMethods    DispatchGeneration `yaml:"map_methods,omitempty" msgpack:"map_methods"`

	// StateParameterName names the state parameter of dispatch methods.
	StateParameterName string `yaml:"state_parameter_name,omitempty" msgpack:"state_parameter_name"`
	// Comparer names the equality strategy of the key: "default",
	// "ignorecase", or the Go identifier of a variantgen.Comparer value.
	Comparer string `yaml:"comparer,omitempty" msgpack:"comparer"`
}

// ResolvedConfiguration is the single source of truth consumed by the
// generators: FeatureFlags with every dependency constraint applied and every
// unspecified option replaced by its default. It is comparable with ==.
type ResolvedConfiguration struct {
	flags FeatureFlags
}

// Flags returns the resolved options as FeatureFlags. Resolving them again
// yields the same configuration.
func (r ResolvedConfiguration) Flags() FeatureFlags { return r.flags }

// The accessors below expose the resolved options.

func (r ResolvedConfiguration) SkipFactoryMethods() bool     { return r.flags.SkipFactoryMethods }
func (r ResolvedConfiguration) SkipParse() bool              { return r.flags.SkipParse }
func (r ResolvedConfiguration) SkipStringPatternParse() bool { return r.flags.SkipStringPatternParse }
func (r ResolvedConfiguration) SkipToString() bool           { return r.flags.SkipToString }
func (r ResolvedConfiguration) SkipEqualityMethods() bool    { return r.flags.SkipEqualityMethods }
func (r ResolvedConfiguration) SkipHashMethods() bool        { return r.flags.SkipHashMethods }
func (r ResolvedConfiguration) StateParameterName() string   { return r.flags.StateParameterName }
func (r ResolvedConfiguration) Comparer() string             { return r.flags.Comparer }
func (r ResolvedConfiguration) SwitchMethods() DispatchGeneration {
	return r.flags.SwitchMethods
}
func (r ResolvedConfiguration) MapMethods() DispatchGeneration {
	return r.flags.MapMethods
}
func (r ResolvedConfiguration) EqualityOperators() OperatorsGeneration {
	return r.flags.EqualityOperators
}
func (r ResolvedConfiguration) ComparisonOperators() OperatorsGeneration {
	return r.flags.ComparisonOperators
}

// ArithmeticOperators returns the option of the given arithmetic operator.
func (r ResolvedConfiguration) ArithmeticOperators(op Operator) OperatorsGeneration {
	switch op {
	case OpAdd:
		return r.flags.AdditionOperators
	case OpSub:
		return r.flags.SubtractionOperators
	case OpMul:
		return r.flags.MultiplyOperators
	case OpDiv:
		return r.flags.DivisionOperators
	default:
		return OperatorsNone
	}
}

// A Feature documents one option of FeatureFlags. The list is used by the
// descriptor loader to reject unknown keys and by the CLI to print help.
type Feature struct {
	// Name of the option as written in descriptor files.
	Name string
	// Description of the option.
	Description string
}

// AllFeatures holds the documentation of every option of FeatureFlags.
var AllFeatures = []Feature{
	{"skip_factory_methods", "Skip New/MustNew factories and case constructors; implies skip_parse"},
	{"skip_parse", "Skip the Parse function; implies skip_string_pattern_parse"},
	{"skip_string_pattern_parse", "Skip UnmarshalText"},
	{"skip_to_string", "Skip String and MarshalText"},
	{"skip_equality_methods", "Skip the Equal method"},
	{"skip_hash_methods", "Skip the Hash method"},
	{"equality_operators", "none | default | default-with-key-type-overloads"},
	{"comparison_operators", "none | default | default-with-key-type-overloads; defaults to none for unordered keys"},
	{"addition_operators", "none | default | default-with-key-type-overloads; defaults to none without key arithmetic"},
	{"subtraction_operators", "none | default | default-with-key-type-overloads; defaults to none without key arithmetic"},
	{"multiply_operators", "none | default | default-with-key-type-overloads; defaults to none without key arithmetic"},
	{"division_operators", "none | default | default-with-key-type-overloads; defaults to none without key arithmetic"},
	{"switch_methods", "none | default | default-with-partial-overloads"},
	{"map_methods", "none | default | default-with-partial-overloads"},
	{"state_parameter_name", "Name of the state parameter of dispatch methods (default \"state\")"},
	{"comparer", "Key equality strategy: default, ignorecase, or a Comparer identifier"},
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
