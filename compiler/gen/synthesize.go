package gen

import (
	"github.com/syssam/variantgen"
	"github.com/syssam/variantgen/compiler/identity"
)

// Input is the input of a structural operation generator.
type Input struct {
	Type   *TypeDescriptor
	Config ResolvedConfiguration
	// Package is the import path of the package the type is generated
	// into. Shared constraints are named per package.
	Package string
	// Reporter receives the violations of the type. Nil discards them.
	Reporter Reporter
	// Scratch is the pool of scratch sets used for deduplication. Nil
	// allocates a set per use.
	Scratch *identity.ReusableHashSet[string]
	// Constraints names the shared constraint interfaces of the session.
	// Nil inlines every constraint set.
	Constraints *ConstraintIndex
}

// NewInput resolves flags against d and returns the input of the generators.
func NewInput(d *TypeDescriptor, r Reporter) *Input {
	return &Input{Type: d, Config: Resolve(d.Flags, d), Package: d.Package, Reporter: r}
}

func (in *Input) report(kind ViolationKind, option, message string) {
	if in.Reporter == nil {
		return
	}
	in.Reporter.Report(NewViolation(in.Type, kind, option, message))
}

// describe returns an empty description of the given kind.
func (in *Input) describe(kind MemberKind) *MemberDescription {
	return &MemberDescription{Kind: kind, Type: in.Type, Config: in.Config}
}

// lease returns a scratch set for case-sensitive strings.
func (in *Input) lease() *identity.HashSet[string] {
	if in.Scratch == nil {
		return identity.NewHashSet(variantgen.Default[string]())
	}
	return in.Scratch.Lease(variantgen.Default[string]())
}

func (in *Input) release(s *identity.HashSet[string]) {
	if in.Scratch != nil {
		in.Scratch.Return(s)
	}
}

// duplicates returns the names of the cases that collide with a previous
// case once normalized: either as a handler parameter or as the exported
// suffix of the case members (Is<Case>, New<T><Case>, item variables).
func (in *Input) duplicates(cases []CaseMember) []string {
	seen := in.lease()
	defer in.release(seen)
	var dups []string
	for _, c := range cases {
		param := seen.Add("param:" + paramName(c.Name))
		member := seen.Add("member:" + pascal(c.Name))
		if !param || !member {
			dups = append(dups, c.Name)
		}
	}
	return dups
}

// A GeneratorFunc produces the description of one family of members. It
// returns nil when nothing is requested or the request cannot be honored; in
// the latter case a Violation was reported.
type GeneratorFunc func(*Input) *MemberDescription

// Generators lists the structural operation generators in emission order.
var Generators = []struct {
	Name string
	Func GeneratorFunc
}{
	{"declaration", GenerateDeclaration},
	{"accessor", GenerateAccessors},
	{"factory", GenerateFactory},
	{"equality", GenerateEquality},
	{"hash", GenerateHash},
	{"comparison", GenerateComparison},
	{"arithmetic", GenerateArithmetic},
	{"dispatch", GenerateDispatch},
	{"parse", GenerateParse},
	{"format", GenerateFormat},
}

// Synthesize runs every generator on the input. Generators are independent:
// a violation in one of them does not affect the output of the others.
func Synthesize(in *Input) []*MemberDescription {
	var out []*MemberDescription
	for _, g := range Generators {
		if m := g.Func(in); m != nil && len(m.Members) > 0 {
			out = append(out, m)
		}
	}
	return out
}
