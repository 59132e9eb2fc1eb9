package gen

import "fmt"

// GenerateDeclaration describes the declaration of the variant type itself:
// a struct holding the key, or the active case index and the payloads of a
// union.
func GenerateDeclaration(in *Input) *MemberDescription {
	d := in.Type
	rule := DeclarationRule{}
	for _, p := range d.TypeParams {
		rule.Constraints = append(rule.Constraints, in.Constraints.Lookup(in.Package, p.Constraints))
	}
	m := in.describe(KindDeclaration)
	m.Members = append(m.Members, MemberSignature{
		Name:       d.Name,
		Kind:       Value,
		TypeParams: d.TypeParams,
		Rule:       rule,
		Doc:        fmt.Sprintf("%s is a %s variant type.", d.Name, d.Shape()),
	})
	return m
}

// GenerateAccessors describes the read accessors of the variant: Key for
// key-based types, and Index, Is<Case> and As<Case> for unions.
func GenerateAccessors(in *Input) *MemberDescription {
	d := in.Type
	m := in.describe(KindAccessor)
	switch d.Shape() {
	case KeyBased:
		m.Members = append(m.Members, MemberSignature{
			Name:    "Key",
			Kind:    Method,
			Results: []TypeRef{FieldRef(d.Key.Type)},
			Rule:    AccessorRule{Style: AccessKey},
			Doc:     fmt.Sprintf("Key returns the %s of the %s.", d.Key.Name, d.Name),
		})
	case CaseBased:
		m.Members = append(m.Members, MemberSignature{
			Name:    "Index",
			Kind:    Method,
			Results: []TypeRef{Builtin("int")},
			Rule:    AccessorRule{Style: AccessIndex},
			Doc:     "Index returns the 1-based index of the active case, or 0 for the zero value.",
		})
		if dups := in.duplicates(d.Cases); len(dups) > 0 {
			in.report(ViolationDuplicateCaseName, "cases", fmt.Sprintf("case accessors are not generated, duplicate cases: %v", dups))
			return m
		}
		for _, c := range d.Cases {
			name := pascal(c.Name)
			m.Members = append(m.Members, MemberSignature{
				Name:    "Is" + name,
				Kind:    Method,
				Results: []TypeRef{Builtin("bool")},
				Rule:    AccessorRule{Style: AccessIs, Case: c},
				Doc:     fmt.Sprintf("Is%s reports whether the %s holds the %s case.", name, d.Name, c.Name),
			})
			if c.Kind() == Stateful {
				m.Members = append(m.Members, MemberSignature{
					Name:    "As" + name,
					Kind:    Method,
					Results: []TypeRef{FieldRef(c.Type), Builtin("bool")},
					Rule:    AccessorRule{Style: AccessAs, Case: c},
					Doc:     fmt.Sprintf("As%s returns the payload of the %s case and whether the %s holds it.", name, c.Name, d.Name),
				})
			}
		}
	}
	return m
}
