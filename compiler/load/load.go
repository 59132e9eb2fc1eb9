// Package load reads variant descriptor files into gen.TypeDescriptor values.
//
// A descriptor file is a YAML document listing the variant types of one Go
// package:
//
//	package: example.com/shop/domain
//	defaults:
//	  equality_operators: default-with-key-type-overloads
//	types:
//	  - name: Money
//	    key: {name: amount, type: decimal}
//	  - name: Shape
//	    cases:
//	      - {name: Circle, type: float64}
//	      - {name: Square, type: float64}
//	      - {name: Empty}
//	    flags:
//	      map_methods: none
//
// Builtin key and payload types are written in lower case ("int8", "string",
// "decimal", ...). Any other name refers to a variant type, optionally
// qualified with its import path ("example.com/shop.Money"). A leading "*"
// gives the type reference semantics.
package load

import (
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/schema/field"
)

// Extensions of the descriptor files found in directories. Files given
// explicitly are loaded whatever their name.
var Extensions = []string{".variant.yaml", ".variant.yml"}

type (
	// File is the YAML form of a descriptor file.
	File struct {
		// Package is the import path of the package the types are generated
		// into. It overrides the package of the loader Config.
		Package string `yaml:"package,omitempty"`
		// Defaults are the feature flags shared by all types of the file.
		// The flags of a type override them option by option.
		Defaults yaml.Node `yaml:"defaults,omitempty"`
		// Types lists the variant types.
		Types []*Type `yaml:"types"`
	}

	// Type is the YAML form of one variant type.
	Type struct {
		Name          string       `yaml:"name"`
		Semantics     string       `yaml:"semantics,omitempty"`
		Nullable      bool         `yaml:"nullable,omitempty"`
		Key           *Key         `yaml:"key,omitempty"`
		Cases         []*Case      `yaml:"cases,omitempty"`
		Items         []*Item      `yaml:"items,omitempty"`
		TypeParams    []*TypeParam `yaml:"type_params,omitempty"`
		NoDefaultCase bool         `yaml:"no_default_case,omitempty"`
		Flags         yaml.Node    `yaml:"flags,omitempty"`
	}

	// Key is the YAML form of the key member.
	Key struct {
		Name     string   `yaml:"name,omitempty"`
		Type     string   `yaml:"type"`
		Nullable bool     `yaml:"nullable,omitempty"`
		Ops      []string `yaml:"ops,omitempty"`
	}

	// Case is the YAML form of a union case. A case without type is stateless.
	Case struct {
		Name string   `yaml:"name,omitempty"`
		Type string   `yaml:"type,omitempty"`
		Ops  []string `yaml:"ops,omitempty"`
	}

	// Item is the YAML form of a well-known value.
	Item struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	}

	// TypeParam is the YAML form of a type parameter.
	TypeParam struct {
		Name        string   `yaml:"name"`
		Constraints []string `yaml:"constraints,omitempty"`
	}
)

// Config holds the configuration for loading descriptors.
type Config struct {
	// Paths are descriptor files or directories holding descriptor files.
	Paths []string
	// Package is the import path of the types whose file names no package.
	Package string
}

// Files returns the descriptor files the config refers to, sorted and
// without duplicates. Directories are not walked recursively.
func (c *Config) Files() ([]string, error) {
	var files []string
	for _, p := range c.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(err, "load: stat descriptor path")
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, errors.Wrapf(err, "load: read directory %s", p)
		}
		for _, e := range entries {
			if !e.IsDir() && IsDescriptorFile(e.Name()) {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// IsDescriptorFile reports whether the file name has a descriptor extension.
func IsDescriptorFile(name string) bool {
	return slices.ContainsFunc(Extensions, func(ext string) bool {
		return strings.HasSuffix(name, ext)
	})
}

// Load loads the descriptors of all files of the config, in file order.
func (c *Config) Load() ([]*gen.TypeDescriptor, error) {
	files, err := c.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Newf("load: no descriptor files found in %s", strings.Join(c.Paths, ", "))
	}
	var types []*gen.TypeDescriptor
	for _, file := range files {
		buf, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "load: read descriptor file")
		}
		ts, err := Parse(file, buf, c.Package)
		if err != nil {
			return nil, err
		}
		types = append(types, ts...)
	}
	return types, nil
}

// Parse parses the descriptor file named filename. Types whose file names no
// package are generated into pkg.
func Parse(filename string, buf []byte, pkg string) ([]*gen.TypeDescriptor, error) {
	var f File
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, errors.Wrapf(err, "load: parse %s", filename)
	}
	if f.Package != "" {
		pkg = f.Package
	}
	if err := checkFlags(filename, &f.Defaults); err != nil {
		return nil, err
	}
	types := make([]*gen.TypeDescriptor, 0, len(f.Types))
	for i, t := range f.Types {
		if t == nil {
			return nil, errors.Newf("load: %s: type %d is empty", filename, i+1)
		}
		d, err := t.descriptor(filename, pkg, &f.Defaults)
		if err != nil {
			return nil, errors.Wrapf(err, "load: %s", filename)
		}
		types = append(types, d)
	}
	return types, nil
}

// descriptor converts the type to a frozen descriptor.
func (t *Type) descriptor(filename, pkg string, defaults *yaml.Node) (*gen.TypeDescriptor, error) {
	d := gen.TypeDescriptor{
		Name:          t.Name,
		Package:       pkg,
		Nullable:      t.Nullable,
		NoDefaultCase: t.NoDefaultCase,
	}
	switch strings.ToLower(t.Semantics) {
	case "", "value":
	case "reference":
		d.Semantics = gen.ReferenceSemantics
	default:
		return nil, errors.Newf("type %s: unknown semantics %q, expect value or reference", t.Name, t.Semantics)
	}
	if t.Key != nil {
		info, err := ParseTypeInfo(t.Key.Type, t.Key.Ops)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s: key", t.Name)
		}
		d.Key = &gen.KeyMember{Name: t.Key.Name, Type: info, Nullable: t.Key.Nullable}
	}
	for i, c := range t.Cases {
		if c == nil {
			return nil, errors.Newf("type %s: case %d is empty", t.Name, i+1)
		}
		m := gen.CaseMember{Name: c.Name, Stateless: c.Type == ""}
		if c.Type != "" {
			info, err := ParseTypeInfo(c.Type, c.Ops)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s: case %d", t.Name, i+1)
			}
			m.Type = info
		}
		d.Cases = append(d.Cases, m)
	}
	for _, it := range t.Items {
		if it != nil {
			d.Items = append(d.Items, gen.Item{Name: it.Name, Value: it.Value})
		}
	}
	for _, p := range t.TypeParams {
		if p != nil {
			d.TypeParams = append(d.TypeParams, gen.TypeParam{Name: p.Name, Constraints: p.Constraints})
		}
	}
	flags, err := decodeFlags(filename, defaults, &t.Flags)
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", t.Name)
	}
	d.Flags = flags
	return gen.NewTypeDescriptor(d)
}

// ParseTypeInfo parses the type of a key or payload. Ops lists the operators
// of a nested variant type ("order", "add", "subtract", ...).
func ParseTypeInfo(s string, ops []string) (*field.TypeInfo, error) {
	s = strings.TrimSpace(s)
	info := &field.TypeInfo{}
	if rest, ok := strings.CutPrefix(s, "*"); ok {
		info.Reference = true
		s = rest
	}
	if s == "" {
		return nil, errors.New("missing type")
	}
	// Exported Go types never collide with the lower-case builtin names.
	if s == strings.ToLower(s) {
		if t, err := field.ParseType(s); err == nil {
			if len(ops) > 0 {
				return nil, errors.Newf("ops are only allowed on variant types, not %s", t)
			}
			info.Type = t
			return info, nil
		}
	}
	info.Type = field.TypeVariant
	info.Ident = s
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		info.PkgPath, info.Ident = s[:i], s[i+1:]
		if info.PkgPath == "" {
			return nil, errors.Newf("invalid type %q", s)
		}
	}
	if !token.IsIdentifier(info.Ident) {
		return nil, errors.Newf("unknown type %q", s)
	}
	for _, name := range ops {
		op, ok := field.ParseOp(name)
		if !ok {
			return nil, errors.Newf("unknown operator %q", name)
		}
		info.Ops = info.Ops.With(op)
	}
	return info, nil
}

// decodeFlags decodes the defaults of the file, then the flags of the type
// over them, so the options of the type win.
func decodeFlags(filename string, defaults, flags *yaml.Node) (gen.FeatureFlags, error) {
	var f gen.FeatureFlags
	if err := checkFlags(filename, flags); err != nil {
		return f, err
	}
	for _, n := range []*yaml.Node{defaults, flags} {
		if n.IsZero() {
			continue
		}
		if err := n.Decode(&f); err != nil {
			return f, errors.Wrapf(err, "%s:%d: invalid flags", filename, n.Line)
		}
	}
	return f, nil
}

// checkFlags rejects option names that are not known features.
func checkFlags(filename string, n *yaml.Node) error {
	if n.IsZero() {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return errors.Newf("%s:%d: flags must be a mapping", filename, n.Line)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i]
		if !slices.ContainsFunc(gen.AllFeatures, func(f gen.Feature) bool { return f.Name == key.Value }) {
			return errors.WithHint(
				errors.Newf("%s:%d: unknown option %q", filename, key.Line, key.Value),
				"run `variantgen features` to list the options",
			)
		}
	}
	return nil
}
