package gen

import (
	"fmt"

	"github.com/syssam/variantgen/schema/field"
)

// MemberKind tags the output of one generator.
type MemberKind uint8

// Kinds of generated members.
const (
	KindDeclaration MemberKind = iota + 1
	KindAccessor
	KindEquality
	KindHash
	KindComparison
	KindArithmetic
	KindDispatch
	KindParse
	KindFormat
	KindFactory
)

var memberKindNames = [...]string{
	KindDeclaration: "declaration",
	KindAccessor:    "accessor",
	KindEquality:    "equality",
	KindHash:        "hash",
	KindComparison:  "comparison",
	KindArithmetic:  "arithmetic",
	KindDispatch:    "dispatch",
	KindParse:       "parse",
	KindFormat:      "format",
	KindFactory:     "factory",
}

// String returns the name of the kind.
func (k MemberKind) String() string {
	if int(k) < len(memberKindNames) && memberKindNames[k] != "" {
		return memberKindNames[k]
	}
	return fmt.Sprintf("MemberKind(%d)", k)
}

// MemberDescription is the output of one generator: abstract member
// signatures plus the rules needed to render their bodies. It references the
// frozen descriptor and resolved configuration it was produced from, so an
// Emitter needs no further lookups.
type MemberDescription struct {
	Kind    MemberKind
	Type    *TypeDescriptor
	Config  ResolvedConfiguration
	Members []MemberSignature
}

// Names returns the names of the described members, in order.
func (m *MemberDescription) Names() []string {
	names := make([]string, len(m.Members))
	for i, s := range m.Members {
		names[i] = s.Name
	}
	return names
}

// Member returns the member with the given name.
func (m *MemberDescription) Member(name string) (MemberSignature, bool) {
	for _, s := range m.Members {
		if s.Name == name {
			return s, true
		}
	}
	return MemberSignature{}, false
}

// SignatureKind tells how a member is declared.
type SignatureKind uint8

const (
	// Method is declared on the variant type.
	Method SignatureKind = iota + 1
	// Function is a package-level function, used where Go methods cannot
	// declare type parameters or where the variant is not the left operand.
	Function
	// Value is a package-level variable or type declaration.
	Value
)

// MemberSignature is one generated member.
type MemberSignature struct {
	Name       string
	Kind       SignatureKind
	TypeParams []TypeParam
	Params     []Param
	Results    []TypeRef
	Rule       Rule
	Doc        string
}

// ParamRole tells what a parameter is used for.
type ParamRole uint8

// Parameter roles.
const (
	RoleOperand ParamRole = iota + 1
	RoleKey
	RoleState
	RoleHandler
	RoleDefault
	RoleInput
	RolePayload
)

// Param is one parameter of a member.
type Param struct {
	Name string
	Type TypeRef
	Role ParamRole
	// Case is the 1-based index of the case a handler or payload belongs to.
	Case int
}

// RefKind tags a TypeRef.
type RefKind uint8

// Type reference kinds.
const (
	// RefSelf is the variant type itself.
	RefSelf RefKind = iota + 1
	// RefBuiltin is a Go builtin type named by Name.
	RefBuiltin
	// RefField is a key or payload type described by Info.
	RefField
	// RefTypeParam is a type parameter named by Name.
	RefTypeParam
	// RefFunc is a function type.
	RefFunc
	// RefOptional is variantgen.Optional of Elem.
	RefOptional
	// RefSlice is a slice of Elem.
	RefSlice
)

// TypeRef is an abstract type reference.
type TypeRef struct {
	Kind    RefKind
	Name    string
	Info    *field.TypeInfo
	Params  []TypeRef
	Results []TypeRef
	Elem    *TypeRef
}

// Self refers to the variant type.
func Self() TypeRef { return TypeRef{Kind: RefSelf} }

// Builtin refers to a builtin Go type such as "bool" or "error".
func Builtin(name string) TypeRef { return TypeRef{Kind: RefBuiltin, Name: name} }

// FieldRef refers to a key or payload type.
func FieldRef(info *field.TypeInfo) TypeRef { return TypeRef{Kind: RefField, Info: info} }

// TypeParamRef refers to a type parameter.
func TypeParamRef(name string) TypeRef { return TypeRef{Kind: RefTypeParam, Name: name} }

// FuncRef refers to a function type.
func FuncRef(params, results []TypeRef) TypeRef {
	return TypeRef{Kind: RefFunc, Params: params, Results: results}
}

// OptionalRef refers to variantgen.Optional[elem].
func OptionalRef(elem TypeRef) TypeRef { return TypeRef{Kind: RefOptional, Elem: &elem} }

// SliceRef refers to []elem.
func SliceRef(elem TypeRef) TypeRef { return TypeRef{Kind: RefSlice, Elem: &elem} }

// Rule describes how the body of a member is rendered. The set of rules is
// closed: Emitters switch exhaustively over the implementations in this
// package.
type Rule interface {
	rule()
}

// DeclarationRule declares the variant type.
type DeclarationRule struct {
	// Constraints holds the constraint of each type parameter: the name of a
	// shared constraint interface, or the single constraint of the parameter.
	Constraints []Constraint
}

// Constraint is the constraint of one type parameter.
type Constraint struct {
	// Shared is the name of the shared interface declaring the constraint
	// set, empty when the set has at most one element.
	Shared string
	// Types is the constraint set.
	Types []string
}

// AccessorStyle selects an accessor shape.
type AccessorStyle uint8

// Accessor styles.
const (
	// AccessKey returns the key of a key-based type.
	AccessKey AccessorStyle = iota + 1
	// AccessIs reports whether a union holds a case.
	AccessIs
	// AccessAs returns the payload of a case and whether the union holds it.
	AccessAs
	// AccessIndex returns the 1-based index of the active case, 0 if none.
	AccessIndex
)

// AccessorRule reads the state of a variant.
type AccessorRule struct {
	Style AccessorStyle
	Case  CaseMember
}

// EqualityRule compares two variants.
type EqualityRule struct {
	// Comparer is the resolved equality strategy of the key or payloads.
	Comparer string
}

// HashRule hashes a variant consistently with EqualityRule.
type HashRule struct {
	Comparer string
}

// Operator is a generated comparison or arithmetic operator.
type Operator uint8

// Operators.
const (
	OpEq Operator = iota + 1
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpCompare
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var operatorNames = [...]string{
	OpEq:      "Eq",
	OpNe:      "Ne",
	OpLt:      "Lt",
	OpLe:      "Le",
	OpGt:      "Gt",
	OpGe:      "Ge",
	OpCompare: "Compare",
	OpAdd:     "Add",
	OpSub:     "Sub",
	OpMul:     "Mul",
	OpDiv:     "Div",
}

var operatorSymbols = [...]string{
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

// String returns the method name of the operator.
func (o Operator) String() string {
	if int(o) < len(operatorNames) && operatorNames[o] != "" {
		return operatorNames[o]
	}
	return fmt.Sprintf("Operator(%d)", o)
}

// Symbol returns the Go operator token, empty for Compare.
func (o Operator) Symbol() string {
	if int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return ""
}

// Arithmetic reports whether the operator produces a new variant.
func (o Operator) Arithmetic() bool {
	return o >= OpAdd && o <= OpDiv
}

// FieldOp returns the key capability the operator requires.
func (o Operator) FieldOp() field.Op {
	switch o {
	case OpEq, OpNe:
		return field.OpEqual
	case OpLt, OpLe, OpGt, OpGe, OpCompare:
		return field.OpOrder
	case OpAdd:
		return field.OpAdd
	case OpSub:
		return field.OpSubtract
	case OpMul:
		return field.OpMultiply
	case OpDiv:
		return field.OpDivide
	default:
		panic(fmt.Sprintf("variantgen/gen: unknown operator %d", o))
	}
}

// OperandShape is the shape of one operand of an operator.
type OperandShape uint8

const (
	// Wrapper operands are values of the variant type.
	Wrapper OperandShape = iota + 1
	// Key operands are bare key values.
	Key
)

// NullHandling tells how an operator treats an absent reference operand.
type NullHandling uint8

const (
	// NullNone is used when no operand may be absent.
	NullNone NullHandling = iota
	// NullAsUnequal makes two absent operands equal and an absent operand
	// unequal to a present one.
	NullAsUnequal
	// NullSortsFirst orders absent operands before present ones.
	NullSortsFirst
	// NullPanics panics with a variantgen.NilKeyError.
	NullPanics
)

// OperatorRule describes one overload of an operator on a key-based type.
type OperatorRule struct {
	Op          Operator
	Left, Right OperandShape
	// Key is the key type the operator works on.
	Key *field.TypeInfo
	// NeedsCast reports that the key arithmetic result has type Via and has
	// to be cast back to the key type before it is re-wrapped.
	NeedsCast bool
	Via       field.Type
	// Null tells how absent operands are handled. It is NullNone only when
	// neither the key nor the variant has reference semantics.
	Null     NullHandling
	Comparer string
}

// DispatchStyle selects a dispatch shape.
type DispatchStyle uint8

// Dispatch styles.
const (
	// DispatchAction calls the handler of the active case.
	DispatchAction DispatchStyle = iota + 1
	// DispatchFunc calls the handler of the active case and returns its result.
	DispatchFunc
	// DispatchMap returns the value given for the active case.
	DispatchMap
)

// Handler binds a dispatch parameter to a case.
type Handler struct {
	Param string
	Case  CaseMember
}

// DispatchRule describes a Switch or Map member.
type DispatchRule struct {
	Style     DispatchStyle
	WithState bool
	Partial   bool
	// Items reports that the cases are the items of a key-based type.
	Items bool
	// Handlers are in case declaration order. A non-partial dispatch has
	// exactly one handler per case.
	Handlers []Handler
	// Default is the name of the default parameter of a partial dispatch.
	Default string
	// State is the name of the state parameter.
	State string
}

// ParseRule parses the text form of a key-based type.
type ParseRule struct {
	// Pattern selects UnmarshalText instead of the Parse function.
	Pattern bool
	Key     *field.TypeInfo
	// Items restricts accepted values to the items of the type.
	Items bool
}

// FormatRule renders the text form of a variant.
type FormatRule struct {
	// Text selects MarshalText instead of String.
	Text bool
}

// FactoryStyle selects a factory shape.
type FactoryStyle uint8

// Factory styles.
const (
	// FactoryNew creates a key-based value, validating it.
	FactoryNew FactoryStyle = iota + 1
	// FactoryMustNew creates a key-based value, panicking on error.
	FactoryMustNew
	// FactoryCase creates a union holding one case.
	FactoryCase
	// FactoryItem declares a well-known value.
	FactoryItem
	// FactoryFromKey looks up the item with the given key.
	FactoryFromKey
	// FactoryAll returns all items.
	FactoryAll
)

// FactoryRule creates variant values.
type FactoryRule struct {
	Style FactoryStyle
	Case  CaseMember
	Item  Item
}

func (DeclarationRule) rule() {}
func (AccessorRule) rule()    {}
func (EqualityRule) rule()    {}
func (HashRule) rule()        {}
func (OperatorRule) rule()    {}
func (DispatchRule) rule()    {}
func (ParseRule) rule()       {}
func (FormatRule) rule()      {}
func (FactoryRule) rule()     {}
