package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// nilText is the text of a value whose key is absent. Parse reads it back
// as an absent key.
const nilText = "<nil>"

// genParse generates the body of the Parse function or of UnmarshalText.
// Parse reads the key from text and creates the value through the factory,
// or looks up the item with that key.
func genParse(t *typeCtx, recv string, r gen.ParseRule) []jen.Code {
	d := t.d
	if r.Pattern {
		parsed := jen.Id("parsed")
		if d.Reference() {
			parsed = jen.Op("*").Id("parsed")
		}
		return []jen.Code{
			jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Add(t.call(d.ParseName(), jen.String().Call(jen.Id("text")))),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
			jen.Op("*").Id(recv).Op("=").Add(parsed),
			jen.Return(jen.Nil()),
		}
	}
	fail := func(err jen.Code) jen.Code {
		return jen.Return(jen.Id("zero"), jen.Qual(runtimePkg, "NewParseError").Call(jen.Lit(d.Name), jen.Id("text"), err))
	}
	create := func(key jen.Code) []jen.Code {
		if r.Items {
			return []jen.Code{
				jen.List(jen.Id("parsed"), jen.Id("ok")).Op(":=").Id(d.FromKeyName()).Call(key),
				jen.If(jen.Op("!").Id("ok")).Block(fail(jen.Nil())),
				jen.Return(jen.Id("parsed"), jen.Nil()),
			}
		}
		return []jen.Code{
			jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Add(t.call(d.FactoryName(), key)),
			jen.If(jen.Err().Op("!=").Nil()).Block(fail(jen.Err())),
			jen.Return(jen.Id("parsed"), jen.Nil()),
		}
	}
	body := []jen.Code{zero(t.self())}
	if t.keyRef() {
		// The text of an absent key, as written by String.
		absent := []jen.Code{jen.Return(jen.Id("zero"), jen.Nil())}
		if d.Key.Semantics == gen.ReferenceSemantics {
			absent = create(jen.Nil())
		}
		body = append(body, jen.If(jen.Id("text").Op("==").Lit(nilText)).Block(absent...))
	}
	body = append(body, t.parseKey(base(r.Key), fail)...)
	key := jen.Id("key")
	if d.Key.Semantics == gen.ReferenceSemantics {
		key = jen.Op("&").Id("key")
	}
	return append(body, create(key)...)
}

// genFormat generates the body of String or MarshalText. Key-based types
// render their key; unions render the name of the active case and its
// payload.
func genFormat(t *typeCtx, recv string, r gen.FormatRule) []jen.Code {
	d := t.d
	if r.Text {
		return []jen.Code{jen.Return(jen.Index().Byte().Call(jen.Id(recv).Dot("String").Call()), jen.Nil())}
	}
	if d.Shape() == gen.KeyBased {
		info := base(d.Key.Type)
		if !t.keyRef() {
			return []jen.Code{jen.Return(t.format(info, jen.Id(recv).Dot("key")))}
		}
		return []jen.Code{
			jen.Id("key").Op(":=").Id(recv).Dot("keyRef").Call(),
			jen.If(jen.Id("key").Op("==").Nil()).Block(jen.Return(jen.Lit(nilText))),
			jen.Return(t.format(info, t.deref(info, "key"))),
		}
	}
	var clauses []jen.Code
	for _, c := range d.Cases {
		var text jen.Code = jen.Lit(c.Name)
		if c.Kind() == gen.Stateful {
			text = jen.Qual("fmt", "Sprintf").Call(jen.Lit(c.Name+"(%v)"), jen.Id(recv).Dot(caseField(c)))
		}
		clauses = append(clauses, jen.Case(jen.Lit(c.Index)).Block(jen.Return(text)))
	}
	return []jen.Code{
		jen.Switch(jen.Id(recv).Dot("Index").Call()).Block(clauses...),
		jen.Return(jen.Lit(d.Name + "(<none>)")),
	}
}
