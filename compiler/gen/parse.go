package gen

import "fmt"

// GenerateParse describes the parsing members of a key-based type: the
// Parse<T> function and, unless string-pattern parsing is skipped, the
// UnmarshalText method defined in terms of it. Parsing goes through the
// factory, so the key is validated the same way.
//
// Unions and types keyed by a type parameter have no text form to parse
// and produce nothing.
func GenerateParse(in *Input) *MemberDescription {
	d := in.Type
	if in.Config.SkipParse() || d.Shape() != KeyBased || d.IsTypeParam(d.Key.Type) {
		return nil
	}
	items := len(d.Items) > 0
	m := in.describe(KindParse)
	m.Members = append(m.Members, MemberSignature{
		Name:       d.ParseName(),
		Kind:       Function,
		TypeParams: d.TypeParams,
		Params:     []Param{{Name: "text", Type: Builtin("string"), Role: RoleInput}},
		Results:    []TypeRef{Self(), Builtin("error")},
		Rule:       ParseRule{Key: d.Key.Type, Items: items},
		Doc:        fmt.Sprintf("Parse%s parses the text form of a %s.", d.Name, d.Name),
	})
	if !in.Config.SkipStringPatternParse() {
		m.Members = append(m.Members, MemberSignature{
			Name:    "UnmarshalText",
			Kind:    Method,
			Params:  []Param{{Name: "text", Type: Builtin("[]byte"), Role: RoleInput}},
			Results: []TypeRef{Builtin("error")},
			Rule:    ParseRule{Pattern: true, Key: d.Key.Type, Items: items},
			Doc:     "UnmarshalText implements the encoding.TextUnmarshaler interface.",
		})
	}
	return m
}

// GenerateFormat describes the String method and, for key-based types, the
// MarshalText method. The String form of a union names its active case.
func GenerateFormat(in *Input) *MemberDescription {
	d := in.Type
	if in.Config.SkipToString() {
		return nil
	}
	m := in.describe(KindFormat)
	m.Members = append(m.Members, MemberSignature{
		Name:    "String",
		Kind:    Method,
		Results: []TypeRef{Builtin("string")},
		Rule:    FormatRule{},
		Doc:     "String implements the fmt.Stringer interface.",
	})
	if d.Shape() == KeyBased {
		m.Members = append(m.Members, MemberSignature{
			Name:    "MarshalText",
			Kind:    Method,
			Results: []TypeRef{Builtin("[]byte"), Builtin("error")},
			Rule:    FormatRule{Text: true},
			Doc:     "MarshalText implements the encoding.TextMarshaler interface.",
		})
	}
	return m
}
