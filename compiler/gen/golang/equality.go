package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// genEqual generates the body of Equal: the keys, or the active cases and
// their payloads, are compared.
func genEqual(t *typeCtx, recv, comparer string) []jen.Code {
	if t.d.Shape() == gen.CaseBased {
		return unionEqual(t, recv, "other", comparer)
	}
	return keyEqual(t, t.keyOperand(recv), t.keyOperand("other"), comparer)
}

// keyOperand returns the key of the named variant value: a pointer from
// keyRef if the key may be absent.
func (t *typeCtx) keyOperand(name string) jen.Code {
	if t.keyRef() {
		return jen.Id(name).Dot("keyRef").Call()
	}
	return jen.Id(name).Dot("key")
}

// bareKeyOperand returns the key parameter of an overload taking a bare key,
// as a pointer if the key may be absent.
func (t *typeCtx) bareKeyOperand() jen.Code {
	if t.keyRef() && t.d.Key.Semantics != gen.ReferenceSemantics {
		return jen.Op("&").Id("key")
	}
	return jen.Id("key")
}

// keyEqual compares two keys. Absent keys are equal to each other only.
func keyEqual(t *typeCtx, a, b jen.Code, comparer string) []jen.Code {
	info := base(t.d.Key.Type)
	if !t.keyRef() {
		return []jen.Code{jen.Return(t.equal(info, comparer, a, b))}
	}
	return []jen.Code{
		jen.List(jen.Id("lhs"), jen.Id("rhs")).Op(":=").List(a, b),
		jen.If(jen.Id("lhs").Op("==").Nil().Op("||").Id("rhs").Op("==").Nil()).Block(
			jen.Return(jen.Id("lhs").Op("==").Nil().Op("&&").Id("rhs").Op("==").Nil()),
		),
		jen.Return(t.equal(info, comparer, t.deref(info, "lhs"), t.deref(info, "rhs"))),
	}
}

// unionEqual compares two unions: they are equal if they hold the same case
// with equal payloads.
func unionEqual(t *typeCtx, a, b, comparer string) []jen.Code {
	var body []jen.Code
	if t.d.Reference() {
		body = append(body, jen.If(jen.Id(a).Op("==").Nil().Op("||").Id(b).Op("==").Nil()).Block(
			jen.Return(jen.Id(a).Op("==").Id(b)),
		))
	}
	body = append(body, jen.If(jen.Id(a).Dot("index").Op("!=").Id(b).Dot("index")).Block(jen.Return(jen.False())))
	var cases []jen.Code
	for _, c := range t.d.Cases {
		if c.Kind() == gen.Stateful {
			cases = append(cases, jen.Case(jen.Lit(c.Index)).Block(
				jen.Return(t.equal(c.Type, comparer, jen.Id(a).Dot(caseField(c)), jen.Id(b).Dot(caseField(c)))),
			))
		}
	}
	if len(cases) > 0 {
		body = append(body, jen.Switch(jen.Id(a).Dot("index")).Block(cases...))
	}
	return append(body, jen.Return(jen.True()))
}

// genHash generates the body of Hash. Unions mix the index of the active
// case with the hash of its payload.
func genHash(t *typeCtx, recv string, r gen.HashRule) []jen.Code {
	d := t.d
	v := jen.Id(recv)
	if d.Shape() == gen.KeyBased {
		info := base(d.Key.Type)
		if !t.keyRef() {
			return []jen.Code{jen.Return(t.hash(info, r.Comparer, jen.Id(recv).Dot("key")))}
		}
		return []jen.Code{
			jen.Id("key").Op(":=").Id(recv).Dot("keyRef").Call(),
			jen.If(jen.Id("key").Op("==").Nil()).Block(jen.Return(jen.Lit(0))),
			jen.Return(t.hash(info, r.Comparer, t.deref(info, "key"))),
		}
	}
	var body []jen.Code
	if d.Reference() {
		body = append(body, jen.If(v.Op("==").Nil()).Block(jen.Return(jen.Lit(0))))
	}
	index := jen.Uint64().Call(jen.Id(recv).Dot("index"))
	var cases []jen.Code
	for _, c := range d.Cases {
		if c.Kind() == gen.Stateful {
			cases = append(cases, jen.Case(jen.Lit(c.Index)).Block(
				jen.Return(jen.Qual(runtimePkg, "CombineHash").Call(
					index,
					t.hash(c.Type, r.Comparer, jen.Id(recv).Dot(caseField(c))),
				)),
			))
		}
	}
	if len(cases) > 0 {
		body = append(body, jen.Switch(jen.Id(recv).Dot("index")).Block(cases...))
	}
	return append(body, jen.Return(jen.Qual(runtimePkg, "CombineHash").Call(index)))
}
