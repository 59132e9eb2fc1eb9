package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// genFactory generates the body of a factory function.
func genFactory(t *typeCtx, r gen.FactoryRule) []jen.Code {
	d := t.d
	switch r.Style {
	case gen.FactoryNew:
		validator := jen.Interface(jen.Id("Validate").Params().Error())
		return []jen.Code{
			jen.Id("value").Op(":=").Add(t.lit(jen.Dict{jen.Id("key"): jen.Id("key")})),
			jen.If(
				jen.List(jen.Id("validator"), jen.Id("ok")).Op(":=").Any().Call(jen.Id("value")).Assert(validator),
				jen.Id("ok"),
			).Block(
				jen.If(jen.Err().Op(":=").Id("validator").Dot("Validate").Call(), jen.Err().Op("!=").Nil()).Block(
					zero(t.self()),
					jen.Return(jen.Id("zero"), jen.Qual(runtimePkg, "NewValidationError").Call(jen.Lit(d.Name), jen.Err())),
				),
			),
			jen.Return(jen.Id("value"), jen.Nil()),
		}
	case gen.FactoryMustNew:
		return []jen.Code{
			jen.List(jen.Id("value"), jen.Err()).Op(":=").Add(t.call(d.FactoryName(), jen.Id("key"))),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Panic(jen.Err())),
			jen.Return(jen.Id("value")),
		}
	case gen.FactoryCase:
		values := jen.Dict{jen.Id("index"): jen.Lit(r.Case.Index)}
		if r.Case.Kind() == gen.Stateful {
			values[jen.Id(caseField(r.Case))] = jen.Id("payload")
		}
		return []jen.Code{jen.Return(t.lit(values))}
	case gen.FactoryFromKey:
		return []jen.Code{
			jen.For(jen.List(jen.Id("_"), jen.Id("item")).Op(":=").Range().Id(d.AllName()).Call()).Block(
				jen.If(t.equal(base(d.Key.Type), t.config.Comparer(), jen.Id("item").Dot("key"), jen.Id("key"))).Block(
					jen.Return(jen.Id("item"), jen.True()),
				),
			),
			zero(t.self()),
			jen.Return(jen.Id("zero"), jen.False()),
		}
	case gen.FactoryAll:
		return []jen.Code{jen.Return(jen.Index().Add(t.self()).ValuesFunc(func(g *jen.Group) {
			for _, it := range d.Items {
				g.Id(d.ItemIdent(it.Name))
			}
		}))}
	default:
		panic("unknown factory style")
	}
}
