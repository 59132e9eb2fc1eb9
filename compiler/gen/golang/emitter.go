// Package golang renders the member descriptions produced by the structural
// operation generators to Go source code, using jennifer.
//
// Every variant type becomes a struct with unexported fields: the key of a
// key-based type, or the active case index and one field per stateful case
// of a union. Members are emitted in the order of the descriptions.
package golang

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"

	"github.com/syssam/variantgen/compiler/gen"
)

// Emitter implements gen.Emitter for Go.
type Emitter struct {
	log *zap.Logger
}

var _ gen.Emitter = (*Emitter)(nil)

// New returns a Go emitter logging to l. A nil logger discards the logs.
func New(l *zap.Logger) *Emitter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Emitter{log: l}
}

// EmitType implements the gen.TypeEmitter interface.
func (e *Emitter) EmitType(pkg *gen.Package, d *gen.TypeDescriptor, members []*gen.MemberDescription) (f *jen.File, err error) {
	// Bodies panic on rules they cannot render; report them as errors of
	// the type instead of crashing the worker.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("golang: emit %s: %v", d.Name, r)
		}
	}()
	t := newTypeCtx(d, members)
	f = pkg.NewFile()
	for _, m := range members {
		for _, s := range m.Members {
			t.member(f, s)
		}
		if m.Kind == gen.KindDeclaration && t.keyRef() {
			genKeyRef(t, f)
		}
	}
	e.log.Debug("type emitted", zap.String("type", d.Name), zap.Int("descriptions", len(members)))
	return f, nil
}

// EmitConstraints implements the gen.PackageEmitter interface.
func (e *Emitter) EmitConstraints(pkg *gen.Package, decls []gen.ConstraintDecl) (*jen.File, error) {
	f := pkg.NewFile()
	for _, c := range decls {
		f.Commentf("%s is the constraint set %s.", c.Name, strings.Join(c.Types, ", "))
		f.Type().Id(c.Name).InterfaceFunc(func(g *jen.Group) {
			for _, s := range c.Types {
				g.Add(ident(s))
			}
		})
	}
	return f, nil
}

// member renders one member to f.
func (t *typeCtx) member(f *jen.File, s gen.MemberSignature) {
	if s.Doc != "" {
		f.Comment(s.Doc)
	}
	switch r := s.Rule.(type) {
	case gen.DeclarationRule:
		genDeclaration(t, f, s)
	case gen.AccessorRule:
		f.Add(t.signature(s).Block(genAccessor(t, t.recv(s), r)...))
	case gen.EqualityRule:
		f.Add(t.signature(s).Block(genEqual(t, t.recv(s), r.Comparer)...))
	case gen.HashRule:
		f.Add(t.signature(s).Block(genHash(t, t.recv(s), r)...))
	case gen.OperatorRule:
		f.Add(t.signature(s).Block(genOperator(t, t.recv(s), r)...))
	case gen.DispatchRule:
		f.Add(t.signature(s).Block(genDispatch(t, t.value(s), r)...))
	case gen.ParseRule:
		f.Add(t.signature(s).Block(genParse(t, t.recv(s), r)...))
	case gen.FormatRule:
		f.Add(t.signature(s).Block(genFormat(t, t.recv(s), r)...))
	case gen.FactoryRule:
		if r.Style == gen.FactoryItem {
			f.Var().Id(s.Name).Op("=").Add(t.lit(jen.Dict{jen.Id("key"): literal(t.d.Key.Type, r.Item.Value)}))
			return
		}
		f.Add(t.signature(s).Block(genFactory(t, r)...))
	default:
		panic(fmt.Sprintf("unknown rule %T", s.Rule))
	}
}

// signature renders the declaration of a method or function member.
func (t *typeCtx) signature(s gen.MemberSignature) *jen.Statement {
	st := jen.Func()
	if s.Kind == gen.Method {
		recv := t.name()
		// Pointer receivers are required to modify the value.
		if t.d.Reference() || s.Name == "UnmarshalText" {
			recv = jen.Op("*").Add(recv)
		}
		st.Params(jen.Id(t.recv(s)).Add(recv))
	}
	st.Id(s.Name)
	if s.Kind == gen.Function {
		st = withTypes(st, t.typeParams(s.TypeParams))
	}
	st.ParamsFunc(func(g *jen.Group) {
		for _, p := range s.Params {
			g.Id(p.Name).Add(t.typeRef(p.Type))
		}
	})
	switch len(s.Results) {
	case 0:
	case 1:
		st.Add(t.typeRef(s.Results[0]))
	default:
		st.ParamsFunc(func(g *jen.Group) {
			for _, r := range s.Results {
				g.Add(t.typeRef(r))
			}
		})
	}
	return st
}

// recv returns the receiver name of a method member.
func (t *typeCtx) recv(s gen.MemberSignature) string {
	return gen.ReceiverName(t.d.Name, s)
}

// value returns the variant value a member works on: the receiver of a
// method or the operand parameter of a function.
func (t *typeCtx) value(s gen.MemberSignature) jen.Code {
	if s.Kind == gen.Method {
		return jen.Id(t.recv(s))
	}
	for _, p := range s.Params {
		if p.Role == gen.RoleOperand {
			return jen.Id(p.Name)
		}
	}
	panic(fmt.Sprintf("%s has no operand", s.Name))
}

// keyRef reports whether the key of the type may be absent, in which case
// the type gets a keyRef method returning a pointer to its key.
func (t *typeCtx) keyRef() bool {
	d := t.d
	return d.Shape() == gen.KeyBased && (d.Reference() || d.Key.Semantics == gen.ReferenceSemantics)
}

// genKeyRef generates the keyRef helper of a type whose key may be absent.
func genKeyRef(t *typeCtx, f *jen.File) {
	recv := gen.ReceiverName(t.d.Name, gen.MemberSignature{})
	f.Comment("keyRef returns a pointer to the key, or nil if it is absent.")
	f.Func().Params(jen.Id(recv).Add(t.self())).Id("keyRef").Params().Op("*").Add(t.fieldType(base(t.d.Key.Type))).BlockFunc(func(g *jen.Group) {
		if t.d.Reference() {
			g.If(jen.Id(recv).Op("==").Nil()).Block(jen.Return(jen.Nil()))
		}
		if t.d.Key.Semantics == gen.ReferenceSemantics {
			g.Return(jen.Id(recv).Dot("key"))
		} else {
			g.Return(jen.Op("&").Id(recv).Dot("key"))
		}
	})
}

// zero declares the zero value of the given type in a variable named zero.
func zero(typ jen.Code) jen.Code {
	return jen.Var().Id("zero").Add(typ)
}
