package golang

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/schema/field"
)

// runtimePkg is the import path of the runtime support package.
const runtimePkg = "github.com/syssam/variantgen"

// typeCtx holds what the emission of one variant type needs to know about
// the type, similar to the GeneratorHelper of the dialect generators.
type typeCtx struct {
	d      *gen.TypeDescriptor
	config gen.ResolvedConfiguration
	// constraints of the type parameters of the variant, by name.
	constraints map[string]gen.Constraint
}

func newTypeCtx(d *gen.TypeDescriptor, members []*gen.MemberDescription) *typeCtx {
	t := &typeCtx{d: d, constraints: make(map[string]gen.Constraint)}
	for _, m := range members {
		t.config = m.Config
		if m.Kind != gen.KindDeclaration {
			continue
		}
		for _, s := range m.Members {
			r, ok := s.Rule.(gen.DeclarationRule)
			if !ok {
				continue
			}
			for i, p := range s.TypeParams {
				if i < len(r.Constraints) {
					t.constraints[p.Name] = r.Constraints[i]
				}
			}
		}
	}
	return t
}

// name returns the name of the variant type, instantiated with its type
// parameters: T or T[P, Q].
func (t *typeCtx) name() *jen.Statement {
	return withTypes(jen.Id(t.d.Name), t.typeArgs())
}

// self returns the type of variant values: *T for reference types.
func (t *typeCtx) self() *jen.Statement {
	if t.d.Reference() {
		return jen.Op("*").Add(t.name())
	}
	return t.name()
}

// lit returns a composite literal of the variant type.
func (t *typeCtx) lit(values jen.Dict) *jen.Statement {
	if t.d.Reference() {
		return jen.Op("&").Add(t.name()).Values(values)
	}
	return t.name().Values(values)
}

// typeArgs returns the type parameters of the variant as type arguments.
func (t *typeCtx) typeArgs() []jen.Code {
	args := make([]jen.Code, len(t.d.TypeParams))
	for i, p := range t.d.TypeParams {
		args[i] = jen.Id(p.Name)
	}
	return args
}

// call returns a call of a package function of the variant, explicitly
// instantiated with the type parameters of the variant.
func (t *typeCtx) call(name string, args ...jen.Code) *jen.Statement {
	return withTypes(jen.Id(name), t.typeArgs()).Call(args...)
}

// typeParams returns the type parameter declarations of a member.
func (t *typeCtx) typeParams(ps []gen.TypeParam) []jen.Code {
	decls := make([]jen.Code, len(ps))
	for i, p := range ps {
		c, ok := t.constraints[p.Name]
		if !ok {
			c = gen.Constraint{Types: p.Constraints}
		}
		decls[i] = jen.Id(p.Name).Add(constraint(c))
	}
	return decls
}

// constraint renders the constraint of a type parameter.
func constraint(c gen.Constraint) jen.Code {
	switch {
	case c.Shared != "":
		return jen.Id(c.Shared)
	case len(c.Types) == 0:
		return jen.Any()
	case len(c.Types) == 1:
		return ident(c.Types[0])
	default:
		return jen.InterfaceFunc(func(g *jen.Group) {
			for _, s := range c.Types {
				g.Add(ident(s))
			}
		})
	}
}

// ident renders a possibly qualified identifier: "Name", "fmt.Stringer" or
// "example.com/pkg.Name". Anything else, such as a type set, is written as is.
func ident(s string) *jen.Statement {
	if s == "any" {
		return jen.Any()
	}
	i := strings.LastIndexByte(s, '.')
	if i > 0 && token.IsIdentifier(s[i+1:]) && !strings.ContainsAny(s[:i], " |~[]") {
		return jen.Qual(s[:i], s[i+1:])
	}
	return jen.Id(s)
}

// typeRef renders an abstract type reference.
func (t *typeCtx) typeRef(r gen.TypeRef) jen.Code {
	switch r.Kind {
	case gen.RefSelf:
		return t.self()
	case gen.RefBuiltin:
		if r.Name == "[]byte" {
			return jen.Index().Byte()
		}
		return jen.Id(r.Name)
	case gen.RefField:
		return t.fieldType(r.Info)
	case gen.RefTypeParam:
		return jen.Id(r.Name)
	case gen.RefFunc:
		params := make([]jen.Code, len(r.Params))
		for i, p := range r.Params {
			params[i] = t.typeRef(p)
		}
		fn := jen.Func().Params(params...)
		for _, res := range r.Results {
			fn.Add(t.typeRef(res))
		}
		return fn
	case gen.RefOptional:
		return jen.Qual(runtimePkg, "Optional").Types(t.typeRef(*r.Elem))
	case gen.RefSlice:
		return jen.Index().Add(t.typeRef(*r.Elem))
	default:
		panic("golang: unknown type reference kind")
	}
}

// fieldType renders the Go type of a key or payload. Reference types are
// rendered as pointers.
func (t *typeCtx) fieldType(info *field.TypeInfo) *jen.Statement {
	var s *jen.Statement
	switch {
	case t.d.IsTypeParam(info):
		s = jen.Id(info.Ident)
	case info.Type == field.TypeVariant && info.PkgPath != "":
		s = jen.Qual(info.PkgPath, info.Ident)
	case info.Type == field.TypeVariant:
		s = jen.Id(info.Ident)
	case info.Type == field.TypeDecimal:
		s = jen.Qual(field.DecimalPkg, "Decimal")
	case info.Type == field.TypeTime:
		s = jen.Qual("time", "Time")
	default:
		s = jen.Id(builtin(info.Type))
	}
	if info.Reference {
		return jen.Op("*").Add(s)
	}
	return s
}

// base returns the value type of a reference type.
func base(info *field.TypeInfo) *field.TypeInfo {
	if !info.Reference {
		return info
	}
	b := *info
	b.Reference = false
	return &b
}

// builtin returns the Go builtin type of a builtin field type.
func builtin(t field.Type) string {
	if t == field.TypeChar {
		return "rune"
	}
	return t.String()
}

// caseField returns the name of the struct field holding the payload of a
// union case.
func caseField(c gen.CaseMember) string {
	return "case" + strconv.Itoa(c.Index)
}

func withTypes(s *jen.Statement, types []jen.Code) *jen.Statement {
	if len(types) == 0 {
		return s
	}
	return s.Types(types...)
}
