package gen

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/syssam/variantgen"
	"github.com/syssam/variantgen/schema/field"
)

// GenerateEquality describes the Equal method.
//
// Key-based types compare their keys with the configured comparer. Unions
// are equal iff they hold the same case and, for stateful cases, equal
// payloads under the same comparer rule.
func GenerateEquality(in *Input) *MemberDescription {
	if in.Config.SkipEqualityMethods() || !in.equatable("skip_equality_methods", true) {
		return nil
	}
	m := in.describe(KindEquality)
	m.Members = append(m.Members, MemberSignature{
		Name:    "Equal",
		Kind:    Method,
		Params:  []Param{{Name: "other", Type: Self(), Role: RoleOperand}},
		Results: []TypeRef{Builtin("bool")},
		Rule:    EqualityRule{Comparer: in.Config.Comparer()},
		Doc:     fmt.Sprintf("Equal reports whether the %s equals other.", in.Type.Name),
	})
	return m
}

// GenerateHash describes the Hash method. Equal values have equal hashes;
// unions mix the case index into the hash of the payload.
func GenerateHash(in *Input) *MemberDescription {
	// Violations are reported once, by the equality generator if it runs.
	report := in.Config.SkipEqualityMethods()
	if in.Config.SkipHashMethods() || !in.equatable("skip_hash_methods", report) {
		return nil
	}
	m := in.describe(KindHash)
	m.Members = append(m.Members, MemberSignature{
		Name:    "Hash",
		Kind:    Method,
		Results: []TypeRef{Builtin("uint64")},
		Rule:    HashRule{Comparer: in.Config.Comparer()},
		Doc:     fmt.Sprintf("Hash returns the hash of the %s. Equal values have equal hashes.", in.Type.Name),
	})
	return m
}

// equatable reports whether equality can be generated for the type with the
// configured comparer.
func (in *Input) equatable(option string, report bool) bool {
	d := in.Type
	fail := func(kind ViolationKind, option, msg string) bool {
		if report {
			in.report(kind, option, msg)
		}
		return false
	}
	switch c := in.Config.Comparer(); c {
	case variantgen.ComparerDefault:
	case variantgen.ComparerIgnoreCase:
		if !slices.ContainsFunc(d.equatedTypes(), func(t *field.TypeInfo) bool { return t.Type == field.TypeString }) {
			return fail(ViolationComparerUnsupported, "comparer", "ignorecase requires a string key or payload")
		}
	default:
		if d.Shape() == CaseBased {
			return fail(ViolationComparerUnsupported, "comparer", fmt.Sprintf("custom comparer %q requires a key-based type", c))
		}
		if !validQualifiedIdent(c) {
			return fail(ViolationComparerUnsupported, "comparer", fmt.Sprintf("comparer %q is not a Go identifier", c))
		}
	}
	if p, ok := d.incomparable(); ok {
		return fail(ViolationNotComparable, option, fmt.Sprintf("type parameter %s is not comparable", p.Name))
	}
	return true
}

// incomparable returns the first type parameter used as key or payload that
// lacks the comparable constraint.
func (t *TypeDescriptor) incomparable() (TypeParam, bool) {
	for _, info := range t.equatedTypes() {
		if p, ok := t.typeParam(info); ok && !slices.Contains(p.Constraints, "comparable") {
			return p, true
		}
	}
	return TypeParam{}, false
}

// equatedTypes returns the types whose equality defines the equality of the
// variant: the key, or the payloads of the stateful cases.
func (t *TypeDescriptor) equatedTypes() []*field.TypeInfo {
	if t.Key != nil {
		return []*field.TypeInfo{t.Key.Type}
	}
	var types []*field.TypeInfo
	for _, c := range t.Cases {
		if c.Kind() == Stateful {
			types = append(types, c.Type)
		}
	}
	return types
}

// typeParam returns the type parameter the given type refers to, if any.
func (t *TypeDescriptor) typeParam(info *field.TypeInfo) (TypeParam, bool) {
	if info == nil || info.Type != field.TypeVariant || info.PkgPath != "" {
		return TypeParam{}, false
	}
	for _, p := range t.TypeParams {
		if p.Name == info.Ident {
			return p, true
		}
	}
	return TypeParam{}, false
}

// IsTypeParam reports whether the given type refers to a type parameter of t.
func (t *TypeDescriptor) IsTypeParam(info *field.TypeInfo) bool {
	_, ok := t.typeParam(info)
	return ok
}

// validQualifiedIdent reports whether s is an identifier, optionally
// qualified with an import path ("example.com/pkg.Name").
func validQualifiedIdent(s string) bool {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return i > 0 && token.IsIdentifier(s[i+1:])
	}
	return token.IsIdentifier(s)
}
