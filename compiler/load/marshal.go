package load

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/schema/field"
)

// Marshal renders the descriptors as a descriptor file, each type with its
// resolved configuration. Loading the output yields descriptors that resolve
// to the same configurations.
func Marshal(types []*gen.TypeDescriptor) ([]byte, error) {
	f := File{Types: make([]*Type, 0, len(types))}
	for _, d := range types {
		t, err := NewType(d, gen.Resolve(d.Flags, d).Flags())
		if err != nil {
			return nil, err
		}
		f.Types = append(f.Types, t)
	}
	buf, err := yaml.Marshal(&f)
	if err != nil {
		return nil, errors.Wrap(err, "load: marshal descriptors")
	}
	return buf, nil
}

// NewType returns the YAML form of the descriptor with the given flags.
func NewType(d *gen.TypeDescriptor, flags gen.FeatureFlags) (*Type, error) {
	t := &Type{
		Name:          d.Name,
		Nullable:      d.Nullable,
		NoDefaultCase: d.NoDefaultCase,
	}
	if d.Semantics == gen.ReferenceSemantics {
		t.Semantics = d.Semantics.String()
	}
	if d.Key != nil {
		t.Key = &Key{
			Name:     d.Key.Name,
			Type:     typeName(d.Key.Type),
			Nullable: d.Key.Nullable,
			Ops:      opNames(d.Key.Type),
		}
	}
	for _, c := range d.Cases {
		m := &Case{Name: c.Name}
		if c.AutoNamed {
			m.Name = ""
		}
		if c.Type != nil {
			m.Type, m.Ops = typeName(c.Type), opNames(c.Type)
		}
		t.Cases = append(t.Cases, m)
	}
	for _, it := range d.Items {
		t.Items = append(t.Items, &Item{Name: it.Name, Value: it.Value})
	}
	for _, p := range d.TypeParams {
		t.TypeParams = append(t.TypeParams, &TypeParam{Name: p.Name, Constraints: p.Constraints})
	}
	if err := t.Flags.Encode(flags); err != nil {
		return nil, errors.Wrapf(err, "load: encode flags of %s", d.Name)
	}
	return t, nil
}

// typeName returns the descriptor file form of a type.
func typeName(info *field.TypeInfo) string {
	var name string
	switch {
	case info.Type != field.TypeVariant:
		name = info.Type.String()
	case info.PkgPath != "":
		name = info.PkgPath + "." + info.Ident
	default:
		name = info.Ident
	}
	if info.Reference {
		return "*" + name
	}
	return name
}

// opNames returns the operators declared on a nested variant type.
func opNames(info *field.TypeInfo) []string {
	if info.Type != field.TypeVariant {
		return nil
	}
	var names []string
	for _, op := range []field.Op{field.OpOrder, field.OpAdd, field.OpSubtract, field.OpMultiply, field.OpDivide} {
		if info.Ops.Has(op) {
			names = append(names, op.String())
		}
	}
	return names
}
