package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
)

// genDispatch generates the body of a Switch or Map member.
//
// Unions switch on the index of the active case. Key-based types switch on
// the item their key equals. A non-partial member panics with an
// UnknownCaseError if no case is active; a partial member falls back to its
// default instead.
func genDispatch(t *typeCtx, value jen.Code, r gen.DispatchRule) []jen.Code {
	var (
		clauses []jen.Code
		unknown jen.Code
	)
	for _, h := range r.Handlers {
		var match jen.Code
		if r.Items {
			item := jen.Id(t.d.ItemIdent(h.Case.Name)).Dot("key")
			match = t.equal(base(t.d.Key.Type), t.config.Comparer(), jen.Add(value).Dot("Key").Call(), item)
		} else {
			match = jen.Lit(h.Case.Index)
		}
		clauses = append(clauses, jen.Case(match).Block(handle(t, value, r, h)...))
	}
	var sw *jen.Statement
	if r.Items {
		sw = jen.Switch()
		unknown = jen.Lit(0)
	} else {
		sw = jen.Switch(jen.Add(value).Dot("Index").Call())
		unknown = jen.Add(value).Dot("Index").Call()
	}
	if !r.Partial {
		clauses = append(clauses, jen.Default().Block(
			jen.Panic(jen.Qual(runtimePkg, "NewUnknownCaseError").Call(jen.Lit(t.d.Name), unknown)),
		))
		return []jen.Code{sw.Block(clauses...)}
	}
	body := []jen.Code{sw.Block(clauses...)}
	switch r.Style {
	case gen.DispatchAction:
		body = append(body, jen.Id(r.Default).Call(args(r, value)...))
	case gen.DispatchFunc:
		body = append(body, jen.Return(jen.Id(r.Default).Call(args(r, value)...)))
	case gen.DispatchMap:
		body = append(body, jen.Return(jen.Id(r.Default)))
	}
	return body
}

// handle returns the statements of the clause of one case.
func handle(t *typeCtx, value jen.Code, r gen.DispatchRule, h gen.Handler) []jen.Code {
	fn := jen.Id(h.Param)
	var call *jen.Statement
	if r.Style != gen.DispatchMap {
		var payload []jen.Code
		if h.Case.Kind() == gen.Stateful {
			payload = append(payload, jen.Add(value).Dot(caseField(h.Case)))
		}
		call = jen.Id(h.Param).Call(args(r, payload...)...)
	}
	switch {
	case r.Style == gen.DispatchAction && r.Partial:
		return []jen.Code{jen.If(fn.Op("!=").Nil()).Block(call, jen.Return())}
	case r.Style == gen.DispatchAction:
		return []jen.Code{call}
	case r.Style == gen.DispatchFunc && r.Partial:
		return []jen.Code{jen.If(fn.Op("!=").Nil()).Block(jen.Return(call))}
	case r.Style == gen.DispatchFunc:
		return []jen.Code{jen.Return(call)}
	case r.Partial:
		return []jen.Code{jen.If(
			jen.List(jen.Id("result"), jen.Id("ok")).Op(":=").Id(h.Param).Dot("Get").Call(),
			jen.Id("ok"),
		).Block(jen.Return(jen.Id("result")))}
	default:
		return []jen.Code{jen.Return(fn)}
	}
}

// args prepends the state, if threaded, to the given handler arguments.
func args(r gen.DispatchRule, values ...jen.Code) []jen.Code {
	if !r.WithState {
		return values
	}
	return append([]jen.Code{jen.Id(r.State)}, values...)
}
