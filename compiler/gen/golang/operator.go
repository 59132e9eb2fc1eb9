package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// genOperator generates the body of an operator overload.
//
// Ne and the ordering operators are defined in terms of Eq and Compare of
// the same overload shape, which are always generated alongside them.
func genOperator(t *typeCtx, recv string, r gen.OperatorRule) []jen.Code {
	lhs, rhs := operands(t, recv, r)
	switch r.Op {
	case gen.OpEq:
		if t.d.Shape() == gen.CaseBased {
			return unionEqual(t, recv, "other", t.config.Comparer())
		}
		return keyEqual(t, lhs, rhs, r.Comparer)
	case gen.OpNe:
		return []jen.Code{jen.Return(jen.Op("!").Add(sibling(t, recv, gen.OpEq, r)))}
	case gen.OpCompare:
		return keyCompare(t, lhs, rhs, r)
	case gen.OpLt, gen.OpLe, gen.OpGt, gen.OpGe:
		return []jen.Code{jen.Return(sibling(t, recv, gen.OpCompare, r).Op(r.Op.Symbol()).Lit(0))}
	default:
		return keyArithmetic(t, lhs, rhs, r)
	}
}

// operands returns the key operands of an overload.
func operands(t *typeCtx, recv string, r gen.OperatorRule) (jen.Code, jen.Code) {
	if t.d.Shape() == gen.CaseBased {
		return nil, nil
	}
	operand := func(shape gen.OperandShape, name string) jen.Code {
		if shape == gen.Key {
			return t.bareKeyOperand()
		}
		return t.keyOperand(name)
	}
	if r.Left == gen.Key {
		return operand(r.Left, "key"), operand(r.Right, "other")
	}
	return operand(r.Left, recv), operand(r.Right, "other")
}

// sibling returns a call of the overload of op with the same operands.
func sibling(t *typeCtx, recv string, op gen.Operator, r gen.OperatorRule) *jen.Statement {
	name := gen.OperatorName(t.d, op, r.Left, r.Right)
	switch {
	case r.Left == gen.Key:
		return jen.Id(name).Call(jen.Id("key"), jen.Id("other"))
	case r.Right == gen.Key:
		return jen.Id(recv).Dot(name).Call(jen.Id("key"))
	default:
		return jen.Id(recv).Dot(name).Call(jen.Id("other"))
	}
}

// keyCompare orders two keys. Absent keys sort first.
func keyCompare(t *typeCtx, a, b jen.Code, r gen.OperatorRule) []jen.Code {
	info := base(r.Key)
	if r.Null == gen.NullNone {
		return []jen.Code{jen.Return(t.compare(info, r.Comparer, a, b))}
	}
	return []jen.Code{
		jen.List(jen.Id("lhs"), jen.Id("rhs")).Op(":=").List(a, b),
		jen.Switch().Block(
			jen.Case(jen.Id("lhs").Op("==").Nil().Op("&&").Id("rhs").Op("==").Nil()).Block(jen.Return(jen.Lit(0))),
			jen.Case(jen.Id("lhs").Op("==").Nil()).Block(jen.Return(jen.Lit(-1))),
			jen.Case(jen.Id("rhs").Op("==").Nil()).Block(jen.Return(jen.Lit(1))),
		),
		jen.Return(t.compare(info, r.Comparer, t.deref(info, "lhs"), t.deref(info, "rhs"))),
	}
}

// keyArithmetic computes a new variant from two keys. Absent keys panic.
func keyArithmetic(t *typeCtx, a, b jen.Code, r gen.OperatorRule) []jen.Code {
	wrap := func(result jen.Code) []jen.Code {
		if t.d.Key.Semantics == gen.ReferenceSemantics {
			return []jen.Code{
				jen.Id("result").Op(":=").Add(result),
				jen.Return(t.lit(jen.Dict{jen.Id("key"): jen.Op("&").Id("result")})),
			}
		}
		return []jen.Code{jen.Return(t.lit(jen.Dict{jen.Id("key"): result}))}
	}
	if r.Null == gen.NullNone {
		return wrap(t.arithmetic(r, a, b))
	}
	body := []jen.Code{
		jen.List(jen.Id("lhs"), jen.Id("rhs")).Op(":=").List(a, b),
		jen.If(jen.Id("lhs").Op("==").Nil().Op("||").Id("rhs").Op("==").Nil()).Block(
			jen.Panic(jen.Qual(runtimePkg, "NewNilKeyError").Call(jen.Lit(t.d.Name), jen.Lit(r.Op.String()))),
		),
	}
	info := base(r.Key)
	return append(body, wrap(t.arithmetic(r, t.deref(info, "lhs"), t.deref(info, "rhs")))...)
}
