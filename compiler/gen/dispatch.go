package gen

import (
	"fmt"
	"slices"
)

// dispatchShape is one requested Switch or Map member.
type dispatchShape struct {
	style     DispatchStyle
	withState bool
	partial   bool
}

// GenerateDispatch describes the Switch and Map members.
//
// A non-partial member takes exactly one handler (or value, for Map) per case,
// in case declaration order. A partial member takes a default first and a
// handler per case; a nil handler (or an absent Optional, for Map) falls back
// to the default. Handlers of stateless cases take no value, handlers of
// stateful cases take the payload. When a state is threaded through, it is
// the first parameter of every handler and of the default.
func GenerateDispatch(in *Input) *MemberDescription {
	d := in.Type
	sw, mp := in.Config.SwitchMethods(), in.Config.MapMethods()
	if !sw.Enabled() && !mp.Enabled() {
		return nil
	}
	// fail reports the violation against every option requesting dispatch.
	fail := func(kind ViolationKind, msg string) *MemberDescription {
		if sw.Enabled() {
			in.report(kind, "switch_methods", msg)
		}
		if mp.Enabled() {
			in.report(kind, "map_methods", msg)
		}
		return nil
	}
	cases := d.DispatchCases()
	if len(cases) == 0 {
		return fail(ViolationDispatchWithoutCases, "dispatch requires cases or items")
	}
	if dups := in.duplicates(cases); len(dups) > 0 {
		return fail(ViolationDuplicateCaseName, fmt.Sprintf("duplicate cases: %v", dups))
	}
	var shapes []dispatchShape
	if sw.Enabled() {
		shapes = append(shapes,
			dispatchShape{style: DispatchAction},
			dispatchShape{style: DispatchAction, withState: true},
			dispatchShape{style: DispatchFunc},
			dispatchShape{style: DispatchFunc, withState: true},
		)
		if sw == DispatchDefaultWithPartialOverloads {
			shapes = append(shapes,
				dispatchShape{style: DispatchAction, partial: true},
				dispatchShape{style: DispatchAction, withState: true, partial: true},
				dispatchShape{style: DispatchFunc, partial: true},
				dispatchShape{style: DispatchFunc, withState: true, partial: true},
			)
		}
	}
	if mp.Enabled() {
		shapes = append(shapes, dispatchShape{style: DispatchMap})
		if mp == DispatchDefaultWithPartialOverloads {
			shapes = append(shapes, dispatchShape{style: DispatchMap, partial: true})
		}
	}
	m := in.describe(KindDispatch)
	for _, s := range shapes {
		m.Members = append(m.Members, in.dispatch(cases, s))
	}
	return m
}

// dispatch returns the signature of one dispatch shape.
//
// The action shape without state is a method; every other shape declares a
// type parameter (state S or result R) and is therefore a package function
// taking the value first, as Go methods cannot declare type parameters.
func (in *Input) dispatch(cases []CaseMember, s dispatchShape) MemberSignature {
	d := in.Type
	var (
		scope  = newParamScope()
		rule   = DispatchRule{Style: s.style, WithState: s.withState, Partial: s.partial, Items: d.Shape() == KeyBased}
		params []Param
	)
	for _, c := range cases {
		rule.Handlers = append(rule.Handlers, Handler{Param: scope.add(paramName(c.Name)), Case: c})
	}
	sig := MemberSignature{Kind: Function, TypeParams: slices.Clone(d.TypeParams)}
	if s.style == DispatchAction && !s.withState {
		sig.Kind = Method
	} else {
		params = append(params, Param{Name: scope.add("value"), Type: Self(), Role: RoleOperand})
	}
	var state, result TypeRef
	if s.withState {
		name := in.freshTypeParam("S")
		sig.TypeParams = append(sig.TypeParams, TypeParam{Name: name, Constraints: []string{"any"}})
		state = TypeParamRef(name)
		rule.State = scope.add(paramName(in.Config.StateParameterName()))
		params = append(params, Param{Name: rule.State, Type: state, Role: RoleState})
	}
	if s.style != DispatchAction {
		name := in.freshTypeParam("R")
		sig.TypeParams = append(sig.TypeParams, TypeParam{Name: name, Constraints: []string{"any"}})
		result = TypeParamRef(name)
		sig.Results = []TypeRef{result}
	}
	// handler returns the type of a handler receiving the given values.
	handler := func(values ...TypeRef) TypeRef {
		if s.withState {
			values = append([]TypeRef{state}, values...)
		}
		var results []TypeRef
		if s.style == DispatchFunc {
			results = []TypeRef{result}
		}
		return FuncRef(values, results)
	}
	if s.partial {
		rule.Default = scope.add(paramName("default"))
		typ := result
		if s.style != DispatchMap {
			typ = handler(Self())
		}
		params = append(params, Param{Name: rule.Default, Type: typ, Role: RoleDefault})
	}
	for _, h := range rule.Handlers {
		var typ TypeRef
		switch {
		case s.style == DispatchMap && s.partial:
			typ = OptionalRef(result)
		case s.style == DispatchMap:
			typ = result
		case h.Case.Kind() == Stateless:
			typ = handler()
		default:
			typ = handler(FieldRef(h.Case.Type))
		}
		params = append(params, Param{Name: h.Param, Type: typ, Role: RoleHandler, Case: h.Case.Index})
	}
	sig.Params = params
	sig.Rule = rule
	sig.Name, sig.Doc = in.dispatchName(s)
	return sig
}

// dispatchName returns the name and the documentation of a dispatch shape.
func (in *Input) dispatchName(s dispatchShape) (string, string) {
	var (
		name string
		t    = in.Type.Name
	)
	switch s.style {
	case DispatchAction, DispatchFunc:
		name = "Switch"
		if s.style == DispatchAction && !s.withState {
			break
		}
		name += t
		if s.style == DispatchFunc {
			name += "Func"
		}
	case DispatchMap:
		name = "Map" + t
	}
	if s.partial {
		name += "Partially"
	}
	if s.withState {
		name += "WithState"
	}
	var doc string
	switch {
	case s.style == DispatchMap && s.partial:
		doc = fmt.Sprintf("%s returns the value given for the active case of the %s, or the default if it is absent.", name, t)
	case s.style == DispatchMap:
		doc = fmt.Sprintf("%s returns the value given for the active case of the %s.", name, t)
	case s.partial:
		doc = fmt.Sprintf("%s calls the handler of the active case of the %s, or the default if the handler is nil.", name, t)
	default:
		doc = fmt.Sprintf("%s calls the handler of the active case of the %s.", name, t)
	}
	if s.style == DispatchFunc {
		doc += " It returns the result of the handler."
	}
	return name, doc
}

// freshTypeParam returns name, or name suffixed with underscores if a type
// parameter of the variant already uses it.
func (in *Input) freshTypeParam(name string) string {
	for slices.ContainsFunc(in.Type.TypeParams, func(p TypeParam) bool { return p.Name == name }) {
		name += "_"
	}
	return name
}

// paramScope hands out distinct parameter names.
type paramScope map[string]struct{}

func newParamScope() paramScope { return make(paramScope) }

// add reserves name, suffixed with underscores until it is free.
func (s paramScope) add(name string) string {
	for {
		if _, ok := s[name]; !ok && name != "_" {
			s[name] = struct{}{}
			return name
		}
		name += "_"
	}
}
