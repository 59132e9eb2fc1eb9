package gen

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/syssam/variantgen/schema/field"
)

// Semantics is the representation kind of a variant or key type.
type Semantics uint8

const (
	// ValueSemantics types are copied by value and never absent.
	ValueSemantics Semantics = iota
	// ReferenceSemantics types are handled through pointers and may be absent.
	ReferenceSemantics
)

// String returns the name of the semantics.
func (s Semantics) String() string {
	switch s {
	case ValueSemantics:
		return "value"
	case ReferenceSemantics:
		return "reference"
	default:
		return fmt.Sprintf("Semantics(%d)", s)
	}
}

// Shape tells whether a type wraps a key or lists cases.
type Shape uint8

const (
	// KeyBased types wrap a single key member.
	KeyBased Shape = iota + 1
	// CaseBased types (closed unions) hold exactly one of their cases.
	CaseBased
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case KeyBased:
		return "key"
	case CaseBased:
		return "union"
	default:
		return fmt.Sprintf("Shape(%d)", s)
	}
}

// CaseKind tells whether a case carries a payload.
type CaseKind uint8

const (
	// Stateless cases carry no payload; all their instances are interchangeable.
	Stateless CaseKind = iota + 1
	// Stateful cases carry one payload value.
	Stateful
)

// The following types describe one variant type. They are built once per
// candidate type from host data and are never mutated afterwards.
type (
	// TypeDescriptor describes one variant type.
	TypeDescriptor struct {
		// Name is the Go identifier of the type.
		Name string
		// Package is the import path of the package the type is generated into.
		Package string
		// Semantics is the representation kind of the type itself.
		Semantics Semantics
		// Nullable reports that the representation may be absent.
		Nullable bool
		// Key is the key member of key-based types.
		Key *KeyMember
		// Cases lists the cases of case-based types, in declaration order.
		Cases []CaseMember
		// Items are the named well-known values of a key-based type.
		Items []Item
		// TypeParams are the generic type parameters of the type.
		TypeParams []TypeParam
		// NoDefaultCase marks a union whose zero value holds no case.
		NoDefaultCase bool
		// Flags are the raw user-supplied feature flags.
		Flags FeatureFlags
	}

	// KeyMember is the single key of a key-based type.
	KeyMember struct {
		Name      string
		Type      *field.TypeInfo
		Nullable  bool
		Semantics Semantics
	}

	// CaseMember is one case of a union.
	CaseMember struct {
		// Index is the 1-based position of the case.
		Index int
		// Name is the user-supplied or derived case name.
		Name string
		// Type is the payload type; nil for stateless cases.
		Type *field.TypeInfo
		// Stateless reports that the case carries no payload.
		Stateless bool
		// AutoNamed reports that Name was derived from the payload type.
		AutoNamed bool
	}

	// Item is a named well-known value of a key-based type.
	Item struct {
		Name  string
		Value string
	}

	// TypeParam is a generic type parameter.
	TypeParam struct {
		Name        string
		Constraints []string
	}
)

// NewTypeDescriptor validates d, derives missing case names and returns the
// frozen descriptor. Only contract violations of the descriptor source are
// rejected here; structural impossibilities (e.g. duplicate case names) are
// reported later by the generators that cannot honor them.
func NewTypeDescriptor(d TypeDescriptor) (*TypeDescriptor, error) {
	if err := ValidTypeName(d.Name); err != nil {
		return nil, err
	}
	switch {
	case d.Key != nil && len(d.Cases) > 0:
		return nil, NewDescriptorError(d.Name, "", "a type cannot declare both a key and cases", nil)
	case d.Key == nil && len(d.Cases) == 0:
		return nil, NewDescriptorError(d.Name, "", "a type must declare a key or at least one case", nil)
	case d.Key == nil && len(d.Items) > 0:
		return nil, NewDescriptorError(d.Name, "", "items require a key member", nil)
	case len(d.Items) > 0 && len(d.TypeParams) > 0:
		return nil, NewDescriptorError(d.Name, "", "items cannot be declared on a generic type", nil)
	}
	out := d
	out.Cases = slices.Clone(d.Cases)
	out.Items = slices.Clone(d.Items)
	out.TypeParams = make([]TypeParam, 0, len(d.TypeParams))
	if d.Key != nil {
		k := *d.Key
		if err := validKey(d.Name, &k); err != nil {
			return nil, err
		}
		out.Key = &k
	}
	stateful := 0
	for i := range out.Cases {
		c := &out.Cases[i]
		c.Index = i + 1
		if c.Type == nil {
			c.Stateless = true
		}
		if c.Stateless {
			c.Type = nil
		} else {
			stateful++
			if !c.Type.Type.Valid() {
				return nil, NewDescriptorError(d.Name, c.Name, fmt.Sprintf("case %d has invalid payload type", c.Index), nil)
			}
		}
		if c.Name == "" {
			if c.Stateless {
				return nil, NewDescriptorError(d.Name, "", fmt.Sprintf("stateless case %d must be named", c.Index), nil)
			}
			c.Name = caseNameOf(c.Type)
			c.AutoNamed = true
		}
		if !token.IsIdentifier(c.Name) {
			return nil, NewDescriptorError(d.Name, c.Name, "case name is not a valid identifier", nil)
		}
	}
	if len(out.Cases) > 0 && stateful == 0 && !d.NoDefaultCase {
		return nil, NewDescriptorError(d.Name, "", "at least one case must carry state unless the type has no default case", nil)
	}
	for _, it := range out.Items {
		if !token.IsIdentifier(it.Name) {
			return nil, NewDescriptorError(d.Name, it.Name, "item name is not a valid identifier", nil)
		}
		if err := validItem(out.Key, it); err != nil {
			return nil, NewDescriptorError(d.Name, it.Name, "invalid item", err)
		}
	}
	seen := make(map[string]bool, len(d.TypeParams))
	for _, p := range d.TypeParams {
		if !token.IsIdentifier(p.Name) {
			return nil, NewDescriptorError(d.Name, p.Name, "type parameter is not a valid identifier", nil)
		}
		if seen[p.Name] {
			return nil, NewDescriptorError(d.Name, p.Name, "duplicate type parameter", nil)
		}
		seen[p.Name] = true
		out.TypeParams = append(out.TypeParams, TypeParam{Name: p.Name, Constraints: slices.Clone(p.Constraints)})
	}
	return &out, nil
}

// validKey checks the key member and fills its defaults.
func validKey(typeName string, k *KeyMember) error {
	if k.Type == nil || !k.Type.Type.Valid() {
		return NewDescriptorError(typeName, k.Name, "key member has no valid type", nil)
	}
	if k.Type.Type == field.TypeVariant && k.Type.Ident == "" {
		return NewDescriptorError(typeName, k.Name, "nested variant key must name its type", nil)
	}
	if k.Name == "" {
		k.Name = "key"
	}
	if !token.IsIdentifier(k.Name) {
		return NewDescriptorError(typeName, k.Name, "key name is not a valid identifier", nil)
	}
	if k.Type.Reference || k.Nullable {
		k.Semantics = ReferenceSemantics
	}
	if k.Semantics == ReferenceSemantics {
		info := *k.Type
		info.Reference = true
		k.Type = &info
	}
	return nil
}

// validItem checks that the value of an item is a literal of the key type.
func validItem(k *KeyMember, it Item) error {
	var err error
	switch t := k.Type.Type; {
	case k.Semantics == ReferenceSemantics:
		return errors.New("items require a key with value semantics")
	case t == field.TypeVariant:
		return errors.New("items require a builtin key type")
	case t == field.TypeBool:
		_, err = strconv.ParseBool(it.Value)
	case t == field.TypeChar:
		if utf8.RuneCountInString(it.Value) != 1 {
			err = fmt.Errorf("%q is not a single character", it.Value)
		}
	case t == field.TypeInt8, t == field.TypeInt16, t == field.TypeInt32, t == field.TypeInt64:
		_, err = strconv.ParseInt(it.Value, 10, bitSize(t))
	case t == field.TypeUint8, t == field.TypeUint16, t == field.TypeUint32, t == field.TypeUint64:
		_, err = strconv.ParseUint(it.Value, 10, bitSize(t))
	case t == field.TypeFloat32, t == field.TypeFloat64, t == field.TypeDecimal:
		_, err = strconv.ParseFloat(it.Value, bitSize(t))
	case t == field.TypeTime:
		_, err = time.Parse(time.RFC3339Nano, it.Value)
	}
	return err
}

// bitSize returns the size in bits of a numeric type.
func bitSize(t field.Type) int {
	switch t {
	case field.TypeInt8, field.TypeUint8:
		return 8
	case field.TypeInt16, field.TypeUint16:
		return 16
	case field.TypeInt32, field.TypeUint32, field.TypeFloat32:
		return 32
	default:
		return 64
	}
}

// caseNameOf derives a case name from a payload type.
func caseNameOf(t *field.TypeInfo) string {
	if t.Ident != "" {
		name := t.Ident
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		return pascal(name)
	}
	return pascal(t.Type.String())
}

// ValidTypeName reports an error if the name cannot be used as a generated
// type name.
func ValidTypeName(name string) error {
	switch {
	case name == "":
		return NewDescriptorError(name, "", "missing type name", nil)
	case !token.IsIdentifier(name):
		return NewDescriptorError(name, "", "type name is not a valid identifier", nil)
	case !token.IsExported(name):
		return NewDescriptorError(name, "", "type name must be exported", nil)
	}
	return nil
}

// Shape returns whether the type is key-based or case-based.
func (t *TypeDescriptor) Shape() Shape {
	if t.Key != nil {
		return KeyBased
	}
	return CaseBased
}

// QualifiedName returns the package-qualified name of the type.
func (t *TypeDescriptor) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Case returns the case with the given 1-based index. An index outside the
// case list is a defect of the caller and panics.
func (t *TypeDescriptor) Case(index int) CaseMember {
	if index < 1 || index > len(t.Cases) {
		panic(fmt.Sprintf("variantgen/gen: %s has no case %d", t.Name, index))
	}
	return t.Cases[index-1]
}

// Kind returns whether the case carries a payload.
func (c CaseMember) Kind() CaseKind {
	if c.Stateless {
		return Stateless
	}
	return Stateful
}

// Arity returns the number of values a handler of this case receives.
func (c CaseMember) Arity() int {
	switch c.Kind() {
	case Stateless:
		return 0
	case Stateful:
		return 1
	default:
		panic("unreachable")
	}
}

// DispatchCases returns the cases a dispatch over this type selects from:
// the cases of a union, or one stateless case per item of a key-based type.
func (t *TypeDescriptor) DispatchCases() []CaseMember {
	switch t.Shape() {
	case CaseBased:
		return t.Cases
	case KeyBased:
		cases := make([]CaseMember, len(t.Items))
		for i, it := range t.Items {
			cases[i] = CaseMember{Index: i + 1, Name: it.Name, Stateless: true}
		}
		return cases
	default:
		panic("unreachable")
	}
}

// Reference reports whether the type is handled through pointers.
func (t *TypeDescriptor) Reference() bool {
	return t.Semantics == ReferenceSemantics || t.Nullable
}

// Generic reports whether the type declares type parameters.
func (t *TypeDescriptor) Generic() bool {
	return len(t.TypeParams) > 0
}

// Equal reports whether two descriptors are structurally equal.
func (t *TypeDescriptor) Equal(o *TypeDescriptor) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Name != o.Name || t.Package != o.Package || t.Semantics != o.Semantics ||
		t.Nullable != o.Nullable || t.NoDefaultCase != o.NoDefaultCase || t.Flags != o.Flags {
		return false
	}
	if (t.Key == nil) != (o.Key == nil) {
		return false
	}
	if t.Key != nil && (t.Key.Name != o.Key.Name || t.Key.Nullable != o.Key.Nullable ||
		t.Key.Semantics != o.Key.Semantics || !t.Key.Type.Equal(o.Key.Type)) {
		return false
	}
	if !slices.EqualFunc(t.Cases, o.Cases, func(a, b CaseMember) bool {
		return a.Index == b.Index && a.Name == b.Name && a.Stateless == b.Stateless &&
			a.AutoNamed == b.AutoNamed && a.Type.Equal(b.Type)
	}) {
		return false
	}
	return slices.Equal(t.Items, o.Items) &&
		slices.EqualFunc(t.TypeParams, o.TypeParams, func(a, b TypeParam) bool {
			return a.Name == b.Name && slices.Equal(a.Constraints, b.Constraints)
		})
}

// ItemIdent returns the identifier of the variable holding the given item.
func (t *TypeDescriptor) ItemIdent(item string) string {
	return t.Name + pascal(item)
}

// FactoryName returns the name of the validating factory of a key-based type.
func (t *TypeDescriptor) FactoryName() string { return "New" + t.Name }

// CaseFactoryName returns the name of the constructor of a union case.
func (t *TypeDescriptor) CaseFactoryName(c CaseMember) string {
	return "New" + t.Name + pascal(c.Name)
}

// FromKeyName returns the name of the item lookup function.
func (t *TypeDescriptor) FromKeyName() string { return t.Name + "FromKey" }

// AllName returns the name of the function listing the items.
func (t *TypeDescriptor) AllName() string { return "All" + plural(t.Name) }

// ParseName returns the name of the parse function.
func (t *TypeDescriptor) ParseName() string { return "Parse" + t.Name }

// String implements the fmt.Stringer interface.
func (t *TypeDescriptor) String() string {
	return fmt.Sprintf("%s(%s)", t.QualifiedName(), t.Shape())
}
