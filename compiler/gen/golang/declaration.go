package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// genDeclaration generates the struct of the variant type.
func genDeclaration(t *typeCtx, f *jen.File, s gen.MemberSignature) {
	d := t.d
	decl := withTypes(f.Type().Id(d.Name), t.typeParams(s.TypeParams))
	decl.StructFunc(func(g *jen.Group) {
		if d.Shape() == gen.KeyBased {
			g.Id("key").Add(t.fieldType(d.Key.Type))
			return
		}
		// Index of the active case, 0 for the zero value.
		g.Id("index").Int()
		for _, c := range d.Cases {
			if c.Kind() == gen.Stateful {
				g.Id(caseField(c)).Add(t.fieldType(c.Type))
			}
		}
	})
}

// genAccessor generates the body of an accessor.
func genAccessor(t *typeCtx, recv string, r gen.AccessorRule) []jen.Code {
	v := jen.Id(recv)
	var body []jen.Code
	switch r.Style {
	case gen.AccessKey:
		if t.d.Reference() {
			body = append(body, jen.If(v.Clone().Op("==").Nil()).Block(
				zero(t.fieldType(t.d.Key.Type)),
				jen.Return(jen.Id("zero")),
			))
		}
		body = append(body, jen.Return(jen.Id(recv).Dot("key")))
	case gen.AccessIndex:
		if t.d.Reference() {
			body = append(body, jen.If(v.Clone().Op("==").Nil()).Block(jen.Return(jen.Lit(0))))
		}
		body = append(body, jen.Return(jen.Id(recv).Dot("index")))
	case gen.AccessIs:
		body = append(body, jen.Return(jen.Id(recv).Dot("Index").Call().Op("==").Lit(r.Case.Index)))
	case gen.AccessAs:
		body = append(body,
			jen.If(jen.Id(recv).Dot("Index").Call().Op("==").Lit(r.Case.Index)).Block(
				jen.Return(jen.Id(recv).Dot(caseField(r.Case)), jen.True()),
			),
			zero(t.fieldType(r.Case.Type)),
			jen.Return(jen.Id("zero"), jen.False()),
		)
	}
	return body
}
