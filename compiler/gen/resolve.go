package gen

import (
	"github.com/syssam/variantgen"
	"github.com/syssam/variantgen/schema/field"
)

// Resolve turns the raw flags of a type into its resolved configuration.
//
// Resolve is pure and total: conflicting flags are normalized, never
// rejected. Dependency constraints are applied in one forward pass over the
// DAG factory methods -> parse -> string-pattern parse:
//
//  1. SkipFactoryMethods forces SkipParse and SkipStringPatternParse.
//  2. SkipParse forces SkipStringPatternParse.
//
// Every unspecified option then takes its default. Defaults depend on the
// descriptor so that they never request a feature the type cannot support,
// e.g. arithmetic defaults to none for string keys. Explicit values are kept
// as is; an explicit request for an impossible feature is reported by the
// generator of that feature.
//
// Resolving the flags of a resolved configuration yields the same
// configuration.
func Resolve(flags FeatureFlags, d *TypeDescriptor) ResolvedConfiguration {
	f := flags
	if f.SkipFactoryMethods {
		f.SkipParse = true
	}
	if f.SkipParse {
		f.SkipStringPatternParse = true
	}
	if f.EqualityOperators == OperatorsUnspecified {
		f.EqualityOperators = OperatorsDefault
		if d != nil {
			if _, ok := d.incomparable(); ok {
				f.EqualityOperators = OperatorsNone
			}
		}
	}
	if f.ComparisonOperators == OperatorsUnspecified {
		f.ComparisonOperators = defaultOperators(d, field.OpOrder)
	}
	if f.AdditionOperators == OperatorsUnspecified {
		f.AdditionOperators = defaultOperators(d, field.OpAdd)
	}
	if f.SubtractionOperators == OperatorsUnspecified {
		f.SubtractionOperators = defaultOperators(d, field.OpSubtract)
	}
	if f.MultiplyOperators == OperatorsUnspecified {
		f.MultiplyOperators = defaultOperators(d, field.OpMultiply)
	}
	if f.DivisionOperators == OperatorsUnspecified {
		f.DivisionOperators = defaultOperators(d, field.OpDivide)
	}
	if f.SwitchMethods == DispatchUnspecified {
		f.SwitchMethods = defaultDispatch(d)
	}
	if f.MapMethods == DispatchUnspecified {
		f.MapMethods = defaultDispatch(d)
	}
	if f.StateParameterName == "" {
		f.StateParameterName = DefaultStateParameterName
	}
	if f.Comparer == "" {
		f.Comparer = variantgen.ComparerDefault
	}
	return ResolvedConfiguration{flags: f}
}

// defaultOperators returns the default of an operator option: generated for
// key-based types whose key supports the operator.
func defaultOperators(d *TypeDescriptor, op field.Op) OperatorsGeneration {
	if d == nil || d.Key == nil || !d.Key.Type.Supports(op) {
		return OperatorsNone
	}
	return OperatorsDefault
}

// defaultDispatch returns the default of a dispatch option: generated for
// types having cases to dispatch over.
func defaultDispatch(d *TypeDescriptor) DispatchGeneration {
	if d == nil || len(d.DispatchCases()) == 0 {
		return DispatchNone
	}
	return DispatchDefault
}
