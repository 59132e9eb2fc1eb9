// Package field describes the types a variant key or case payload may declare.
//
// A key type decides which structural operations are legal on the variant
// that wraps it:
//
//	field.TypeInt8.Ordered()        // true
//	field.TypeInt8.Arithmetic()     // true
//	field.TypeInt8.NeedsCast()      // true: int8 - int8 promotes to int
//	field.TypeDecimal.NeedsCast()   // false
//	field.TypeString.Arithmetic()   // false
//
// Nested variant types (TypeVariant) carry their own capabilities in
// TypeInfo.Ops since they are only known from their own descriptor.
package field

import (
	"fmt"
	"strings"
)

// Type is a key or payload type.
type Type uint8

// List of types supported by the generator.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeChar
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	TypeString
	TypeTime
	TypeVariant
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeChar:    "char",
	TypeInt8:    "int8",
	TypeUint8:   "uint8",
	TypeInt16:   "int16",
	TypeUint16:  "uint16",
	TypeInt32:   "int32",
	TypeUint32:  "uint32",
	TypeInt64:   "int64",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeDecimal: "decimal",
	TypeString:  "string",
	TypeTime:    "time",
	TypeVariant: "variant",
}

// aliases accepted by ParseType, in addition to the canonical names.
var aliases = map[string]Type{
	"boolean":  TypeBool,
	"rune":     TypeChar,
	"sbyte":    TypeInt8,
	"byte":     TypeUint8,
	"short":    TypeInt16,
	"ushort":   TypeUint16,
	"int":      TypeInt32,
	"uint":     TypeUint32,
	"long":     TypeInt64,
	"ulong":    TypeUint64,
	"float":    TypeFloat32,
	"single":   TypeFloat32,
	"double":   TypeFloat64,
	"datetime": TypeTime,
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports if the type is a signed or unsigned integer.
func (t Type) Integer() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

// Numeric reports if the type supports arithmetic natively.
// Characters count as numeric, following their code point arithmetic.
func (t Type) Numeric() bool {
	return t == TypeChar || t.Integer() || t == TypeFloat32 || t == TypeFloat64 || t == TypeDecimal
}

// Ordered reports if values of the type have a natural total order.
// Nested variants report their order through TypeInfo.
func (t Type) Ordered() bool {
	return t.Numeric() || t == TypeString || t == TypeTime
}

// Arithmetic reports if +, -, * and / are defined between two values of the type.
func (t Type) Arithmetic() bool {
	return t.Numeric()
}

// Narrow reports if the type is narrower than the default integer width.
// Binary arithmetic between two narrow operands yields a default-width
// integer, so the result has to be converted back.
func (t Type) Narrow() bool {
	switch t {
	case TypeInt8, TypeUint8, TypeInt16, TypeUint16, TypeChar:
		return true
	default:
		return false
	}
}

// ArithmeticResult returns the type produced by binary arithmetic between two
// operands of type t.
func (t Type) ArithmeticResult() Type {
	if t.Narrow() {
		return TypeInt32
	}
	return t
}

// NeedsCast reports if the result of binary arithmetic on t must be cast
// back to t before it is re-wrapped.
func (t Type) NeedsCast() bool {
	return t.ArithmeticResult() != t
}

// ParseType parses a type name. Canonical names and common aliases
// ("int", "long", "double", "byte", ...) are accepted, case-insensitively.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t := TypeBool; t < endTypes; t++ {
		if typeNames[t] == name {
			return t, nil
		}
	}
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
