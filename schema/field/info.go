package field

import "strings"

// Op is a structural operator a type may support.
type Op uint8

// Supported operators. Values are bit flags so a set of operators fits in Ops.
const (
	OpEqual Op = 1 << iota
	OpOrder
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

var opNames = map[Op]string{
	OpEqual:    "equal",
	OpOrder:    "order",
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
}

// String returns the name of the operator.
func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "invalid"
}

// Arithmetic reports if the operator is an arithmetic one.
func (o Op) Arithmetic() bool {
	return o == OpAdd || o == OpSubtract || o == OpMultiply || o == OpDivide
}

// ParseOp parses an operator name.
func ParseOp(s string) (Op, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, n := range opNames {
		if n == s {
			return o, true
		}
	}
	return 0, false
}

// Ops is a set of operators.
type Ops uint8

// Has reports if the set contains o.
func (s Ops) Has(o Op) bool { return s&Ops(o) != 0 }

// With returns a copy of s that contains o.
func (s Ops) With(o Op) Ops { return s | Ops(o) }

// AllArithmetic is the set of all arithmetic operators.
const AllArithmetic = Ops(OpAdd | OpSubtract | OpMultiply | OpDivide)

// TypeInfo holds the information of a key or payload type.
type TypeInfo struct {
	// Type of the value.
	Type Type
	// Ident is the Go identifier of the type when it is not a builtin, e.g.
	// "Currency" for a nested variant or "Decimal" for decimals.
	Ident string
	// PkgPath is the import path of Ident, empty for the generated package.
	PkgPath string
	// Reference reports reference semantics: a value of the type may be absent
	// and is represented by a pointer.
	Reference bool
	// Ops lists the operators of a nested variant. Ignored for builtin types.
	Ops Ops
}

// DecimalPkg is the import path of the decimal implementation used for
// TypeDecimal values.
const DecimalPkg = "github.com/shopspring/decimal"

// Supports reports if the type supports the given operator.
func (t *TypeInfo) Supports(o Op) bool {
	if t == nil {
		return false
	}
	switch {
	case t.Type == TypeVariant:
		return o == OpEqual || t.Ops.Has(o)
	case o == OpEqual:
		return t.Type.Valid()
	case o == OpOrder:
		return t.Type.Ordered()
	case o.Arithmetic():
		return t.Type.Arithmetic()
	default:
		return false
	}
}

// NeedsCast reports if arithmetic on values of this type must be cast back.
// Nested variants define their own operators, so the result type is already
// the variant type.
func (t *TypeInfo) NeedsCast() bool {
	if t == nil || t.Type == TypeVariant {
		return false
	}
	return t.Type.NeedsCast()
}

// String returns the display name of the type.
func (t *TypeInfo) String() string {
	if t == nil {
		return ""
	}
	if t.Ident != "" {
		if t.Reference {
			return "*" + t.Ident
		}
		return t.Ident
	}
	if t.Reference {
		return "*" + t.Type.String()
	}
	return t.Type.String()
}

// Equal reports whether two type infos describe the same type.
func (t *TypeInfo) Equal(o *TypeInfo) bool {
	if t == nil || o == nil {
		return t == o
	}
	return *t == *o
}
