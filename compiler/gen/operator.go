package gen

import (
	"fmt"

	"github.com/syssam/variantgen/schema/field"
)

var (
	equalityOps   = []Operator{OpEq, OpNe}
	comparisonOps = []Operator{OpLt, OpLe, OpGt, OpGe, OpCompare}
	arithmeticOps = []Operator{OpAdd, OpSub, OpMul, OpDiv}
)

// optionOf returns the name of the option requesting the operator.
func optionOf(op Operator) string {
	switch op {
	case OpEq, OpNe:
		return "equality_operators"
	case OpLt, OpLe, OpGt, OpGe, OpCompare:
		return "comparison_operators"
	case OpAdd:
		return "addition_operators"
	case OpSub:
		return "subtraction_operators"
	case OpMul:
		return "multiply_operators"
	case OpDiv:
		return "division_operators"
	default:
		panic(fmt.Sprintf("variantgen/gen: unknown operator %d", op))
	}
}

// GenerateComparison describes the equality (Eq, Ne) and ordering (Lt, Le,
// Gt, Ge, Compare) operators.
//
// Equality operators between two unions are allowed; key-type overloads and
// ordering are not, as unions have no key.
func GenerateComparison(in *Input) *MemberDescription {
	m := in.describe(KindComparison)
	if g := in.Config.EqualityOperators(); g.Enabled() {
		m.Members = append(m.Members, in.operators(equalityOps, g)...)
	}
	if g := in.Config.ComparisonOperators(); g.Enabled() {
		m.Members = append(m.Members, in.operators(comparisonOps, g)...)
	}
	return m
}

// GenerateArithmetic describes the Add, Sub, Mul and Div operators of a
// key-based type. Operands of a key type narrower than the default integer
// width are widened and the result is cast back to the key type.
func GenerateArithmetic(in *Input) *MemberDescription {
	m := in.describe(KindArithmetic)
	for _, op := range arithmeticOps {
		if g := in.Config.ArithmeticOperators(op); g.Enabled() {
			m.Members = append(m.Members, in.operators([]Operator{op}, g)...)
		}
	}
	return m
}

// operators describes a group of operators requested by one option. The group
// produces no member if any operator of it cannot be generated.
func (in *Input) operators(ops []Operator, g OperatorsGeneration) []MemberSignature {
	d := in.Type
	option := optionOf(ops[0])
	if ops[0] == OpEq {
		if p, ok := d.incomparable(); ok {
			in.report(ViolationNotComparable, option, fmt.Sprintf("type parameter %s is not comparable", p.Name))
			return nil
		}
		// Eq and Ne follow Equal. A comparer Equal cannot use is reported
		// once, by the equality generator if it runs.
		if !in.equatable(option, in.Config.SkipEqualityMethods()) {
			return nil
		}
	}
	if d.Shape() == CaseBased {
		if ops[0] != OpEq || g == OperatorsDefaultWithKeyTypeOverloads {
			in.report(ViolationOperatorOnUnion, option, fmt.Sprintf("%s requires a key-based type", option))
			return nil
		}
		members := make([]MemberSignature, 0, len(ops))
		for _, op := range ops {
			members = append(members, in.operator(OperatorRule{Op: op, Left: Wrapper, Right: Wrapper, Null: in.nullHandling(op)}))
		}
		return members
	}
	for _, op := range ops {
		if !d.Key.Type.Supports(op.FieldOp()) {
			in.report(ViolationOperatorUnsupported, option,
				fmt.Sprintf("key type %s does not support %s", d.Key.Type, op.FieldOp()))
			return nil
		}
	}
	var members []MemberSignature
	for _, op := range ops {
		members = append(members, in.operator(in.operatorRule(op, Wrapper, Wrapper)))
	}
	if g == OperatorsDefaultWithKeyTypeOverloads {
		for _, op := range ops {
			members = append(members, in.operator(in.operatorRule(op, Wrapper, Key)))
		}
		for _, op := range ops {
			members = append(members, in.operator(in.operatorRule(op, Key, Wrapper)))
		}
	}
	return members
}

// operatorRule returns the rule of an operator on a key-based type.
func (in *Input) operatorRule(op Operator, left, right OperandShape) OperatorRule {
	k := in.Type.Key.Type
	r := OperatorRule{
		Op:       op,
		Left:     left,
		Right:    right,
		Key:      k,
		Null:     in.nullHandling(op),
		Comparer: in.Config.Comparer(),
	}
	if op.Arithmetic() {
		r.NeedsCast = k.NeedsCast()
		r.Via = k.Type
		if r.NeedsCast {
			r.Via = k.Type.ArithmeticResult()
		}
	}
	return r
}

// nullHandling returns how the operator treats absent operands.
func (in *Input) nullHandling(op Operator) NullHandling {
	d := in.Type
	if !d.Reference() && (d.Key == nil || d.Key.Semantics == ValueSemantics) {
		return NullNone
	}
	switch {
	case op == OpEq || op == OpNe:
		return NullAsUnequal
	case op.Arithmetic():
		return NullPanics
	default:
		return NullSortsFirst
	}
}

// operator returns the signature of one operator overload.
//
//	Wrapper op Wrapper: method  Lt(other T) bool
//	Wrapper op Key:     method  LtKey(key K) bool
//	Key op Wrapper:     func    TKeyLt(key K, other T) bool
func (in *Input) operator(r OperatorRule) MemberSignature {
	d := in.Type
	result := Builtin("bool")
	switch {
	case r.Op == OpCompare:
		result = Builtin("int")
	case r.Op.Arithmetic():
		result = Self()
	}
	s := MemberSignature{
		Kind:    Method,
		Results: []TypeRef{result},
		Rule:    r,
	}
	s.Name = OperatorName(d, r.Op, r.Left, r.Right)
	switch {
	case r.Left == Wrapper && r.Right == Wrapper:
		s.Params = []Param{{Name: "other", Type: Self(), Role: RoleOperand}}
		s.Doc = fmt.Sprintf("%s %s.", s.Name, operatorDoc(r.Op, "the "+d.Name, "other"))
	case r.Left == Wrapper && r.Right == Key:
		s.Params = []Param{{Name: "key", Type: FieldRef(d.Key.Type), Role: RoleKey}}
		s.Doc = fmt.Sprintf("%s %s.", s.Name, operatorDoc(r.Op, "the "+d.Name, "key"))
	case r.Left == Key && r.Right == Wrapper:
		s.Kind = Function
		s.TypeParams = d.TypeParams
		s.Params = []Param{
			{Name: "key", Type: FieldRef(d.Key.Type), Role: RoleKey},
			{Name: "other", Type: Self(), Role: RoleOperand},
		}
		s.Doc = fmt.Sprintf("%s %s.", s.Name, operatorDoc(r.Op, "key", "other"))
	default:
		panic(fmt.Sprintf("variantgen/gen: invalid operand shapes %d, %d", r.Left, r.Right))
	}
	return s
}

// OperatorName returns the name of an operator overload of d.
func OperatorName(d *TypeDescriptor, op Operator, left, right OperandShape) string {
	switch {
	case left == Key:
		return d.Name + "Key" + op.String()
	case right == Key:
		return op.String() + "Key"
	default:
		return op.String()
	}
}

func operatorDoc(op Operator, left, right string) string {
	switch op {
	case OpEq:
		return fmt.Sprintf("reports whether %s equals %s", left, right)
	case OpNe:
		return fmt.Sprintf("reports whether %s does not equal %s", left, right)
	case OpLt, OpLe, OpGt, OpGe:
		return fmt.Sprintf("reports whether %s %s %s", left, op.Symbol(), right)
	case OpCompare:
		return fmt.Sprintf("returns -1, 0 or +1 depending on whether %s is less than, equal to, or greater than %s", left, right)
	default:
		return fmt.Sprintf("returns %s %s %s", left, op.Symbol(), right)
	}
}

// CastRequired reports whether arithmetic on the given key type inserts a
// cast back to the key type.
func CastRequired(t field.Type) bool {
	return (&field.TypeInfo{Type: t}).NeedsCast()
}
