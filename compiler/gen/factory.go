package gen

import "fmt"

// GenerateFactory describes the creation members of the variant.
//
// Key-based types get New<T>, which calls the optional Validate method of
// the value, and MustNew<T>. Key-based types with items get one variable per
// item, <T>FromKey and All<Plural> instead, since their values are closed.
// Unions get a constructor per case.
func GenerateFactory(in *Input) *MemberDescription {
	if in.Config.SkipFactoryMethods() {
		return nil
	}
	d := in.Type
	m := in.describe(KindFactory)
	switch {
	case d.Shape() == CaseBased:
		if dups := in.duplicates(d.Cases); len(dups) > 0 {
			in.report(ViolationDuplicateCaseName, "skip_factory_methods", fmt.Sprintf("case constructors are not generated, duplicate cases: %v", dups))
			return nil
		}
		for _, c := range d.Cases {
			s := MemberSignature{
				Name:       d.CaseFactoryName(c),
				Kind:       Function,
				TypeParams: d.TypeParams,
				Results:    []TypeRef{Self()},
				Rule:       FactoryRule{Style: FactoryCase, Case: c},
				Doc:        fmt.Sprintf("%s returns a %s holding the %s case.", d.CaseFactoryName(c), d.Name, c.Name),
			}
			if c.Kind() == Stateful {
				s.Params = []Param{{Name: "payload", Type: FieldRef(c.Type), Role: RolePayload, Case: c.Index}}
			}
			m.Members = append(m.Members, s)
		}
	case len(d.Items) > 0:
		if dups := in.duplicates(d.DispatchCases()); len(dups) > 0 {
			in.report(ViolationDuplicateCaseName, "skip_factory_methods", fmt.Sprintf("items are not generated, duplicate items: %v", dups))
			return nil
		}
		for _, it := range d.Items {
			m.Members = append(m.Members, MemberSignature{
				Name: d.ItemIdent(it.Name),
				Kind: Value,
				Rule: FactoryRule{Style: FactoryItem, Item: it},
				Doc:  fmt.Sprintf("%s is the %s item of %s.", d.ItemIdent(it.Name), it.Name, d.Name),
			})
		}
		m.Members = append(m.Members,
			MemberSignature{
				Name:       d.FromKeyName(),
				Kind:       Function,
				TypeParams: d.TypeParams,
				Params:     []Param{{Name: "key", Type: FieldRef(d.Key.Type), Role: RoleKey}},
				Results:    []TypeRef{Self(), Builtin("bool")},
				Rule:       FactoryRule{Style: FactoryFromKey},
				Doc:        fmt.Sprintf("%s returns the %s item with the given key.", d.FromKeyName(), d.Name),
			},
			MemberSignature{
				Name:       d.AllName(),
				Kind:       Function,
				TypeParams: d.TypeParams,
				Results:    []TypeRef{SliceRef(Self())},
				Rule:       FactoryRule{Style: FactoryAll},
				Doc:        fmt.Sprintf("%s returns all %s items in declaration order.", d.AllName(), d.Name),
			},
		)
	default:
		key := []Param{{Name: "key", Type: FieldRef(d.Key.Type), Role: RoleKey}}
		m.Members = append(m.Members,
			MemberSignature{
				Name:       d.FactoryName(),
				Kind:       Function,
				TypeParams: d.TypeParams,
				Params:     key,
				Results:    []TypeRef{Self(), Builtin("error")},
				Rule:       FactoryRule{Style: FactoryNew},
				Doc:        fmt.Sprintf("New%s returns a %s wrapping key. If %s implements Validate() error, the value is validated.", d.Name, d.Name, d.Name),
			},
			MemberSignature{
				Name:       "MustNew" + d.Name,
				Kind:       Function,
				TypeParams: d.TypeParams,
				Params:     key,
				Results:    []TypeRef{Self()},
				Rule:       FactoryRule{Style: FactoryMustNew},
				Doc:        fmt.Sprintf("MustNew%s is like New%s but panics on error.", d.Name, d.Name),
			},
		)
	}
	return m
}
