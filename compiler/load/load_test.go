package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/schema/field"
)

func loadValid(t *testing.T) map[string]*gen.TypeDescriptor {
	t.Helper()
	cfg := &Config{Paths: []string{"./testdata/valid"}, Package: "example.com/fallback"}
	types, err := cfg.Load()
	require.NoError(t, err)
	byName := make(map[string]*gen.TypeDescriptor, len(types))
	for _, d := range types {
		byName[d.Name] = d
	}
	return byName
}

func TestLoad(t *testing.T) {
	types := loadValid(t)
	require.Len(t, types, 6)

	t.Run("key", func(t *testing.T) {
		m := types["Money"]
		assert.Equal(t, "example.com/shop/domain", m.Package)
		assert.Equal(t, "amount", m.Key.Name)
		assert.Equal(t, &field.TypeInfo{Type: field.TypeDecimal}, m.Key.Type)
		assert.Equal(t, gen.OperatorsDefaultWithKeyTypeOverloads, m.Flags.EqualityOperators)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		q := types["Quantity"]
		assert.Equal(t, gen.OperatorsDefault, q.Flags.EqualityOperators)
		assert.Equal(t, gen.OperatorsNone, q.Flags.DivisionOperators)
		assert.Equal(t, gen.OperatorsUnspecified, q.Flags.AdditionOperators)
	})

	t.Run("items", func(t *testing.T) {
		c := types["Currency"]
		assert.Equal(t, []gen.Item{{Name: "Usd", Value: "USD"}, {Name: "Eur", Value: "EUR"}}, c.Items)
		assert.Equal(t, "ignorecase", c.Flags.Comparer)
	})

	t.Run("union", func(t *testing.T) {
		s := types["Shape"]
		assert.Equal(t, "example.com/fallback", s.Package)
		require.Len(t, s.Cases, 3)
		assert.Equal(t, gen.Stateless, s.Cases[2].Kind())
		assert.Equal(t, gen.DispatchDefaultWithPartialOverloads, s.Flags.SwitchMethods)
		assert.Equal(t, "ctx", s.Flags.StateParameterName)
	})

	t.Run("nested variant", func(t *testing.T) {
		p := types["Price"]
		assert.Equal(t, gen.ReferenceSemantics, p.Semantics)
		c := p.Cases[0]
		assert.Equal(t, "Money", c.Name)
		assert.True(t, c.AutoNamed)
		assert.Equal(t, &field.TypeInfo{
			Type:    field.TypeVariant,
			Ident:   "Money",
			PkgPath: "example.com/shop/domain",
			Ops:     field.Ops(field.OpOrder | field.OpAdd),
		}, c.Type)
	})

	t.Run("generic", func(t *testing.T) {
		r := types["Result"]
		assert.Equal(t, []gen.TypeParam{{Name: "T", Constraints: []string{"comparable", "fmt.Stringer"}}}, r.TypeParams)
		assert.True(t, r.IsTypeParam(r.Cases[0].Type))
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"unknown_option.variant.yaml", `unknown option "skip_everything"`},
		{"bad_value.variant.yaml", `unknown option value "sometimes"`},
		{"bad_descriptor.variant.yaml", "both a key and cases"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cfg := &Config{Paths: []string{filepath.Join("testdata", "invalid", tt.file)}}
			_, err := cfg.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), tt.file)
		})
	}

	t.Run("descriptor sentinel", func(t *testing.T) {
		_, err := (&Config{Paths: []string{"testdata/invalid/bad_descriptor.variant.yaml"}}).Load()
		assert.True(t, errors.Is(err, gen.ErrInvalidDescriptor))
	})

	t.Run("hint", func(t *testing.T) {
		_, err := (&Config{Paths: []string{"testdata/invalid/unknown_option.variant.yaml"}}).Load()
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := (&Config{Paths: []string{"testdata/missing"}}).Load()
		assert.Error(t, err)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := (&Config{Paths: []string{t.TempDir()}}).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no descriptor files")
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "types: [", "parse bad.yaml"},
		{"unknown default", "defaults: {bogus: 1}\ntypes: []", `bad.yaml:1: unknown option "bogus"`},
		{"flags not a mapping", "types:\n  - name: Money\n    key: {type: int8}\n    flags: [a]", "flags must be a mapping"},
		{"empty type", "types:\n  -\n", "type 1 is empty"},
		{"semantics", "types:\n  - name: Money\n    semantics: shared\n    key: {type: int8}", `unknown semantics "shared"`},
		{"key type", "types:\n  - name: Money\n    key: {type: 'not a type'}", "type Money: key"},
		{"case type", "types:\n  - name: Shape\n    cases: [{type: '.Money'}]", "type Shape: case 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.src), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseTypeInfo(t *testing.T) {
	tests := []struct {
		input string
		ops   []string
		want  *field.TypeInfo
	}{
		{"int8", nil, &field.TypeInfo{Type: field.TypeInt8}},
		{"long", nil, &field.TypeInfo{Type: field.TypeInt64}},
		{"*string", nil, &field.TypeInfo{Type: field.TypeString, Reference: true}},
		{"Money", nil, &field.TypeInfo{Type: field.TypeVariant, Ident: "Money"}},
		{"String", nil, &field.TypeInfo{Type: field.TypeVariant, Ident: "String"}},
		{"example.com/x.Money", []string{"add"}, &field.TypeInfo{Type: field.TypeVariant, Ident: "Money", PkgPath: "example.com/x", Ops: field.Ops(field.OpAdd)}},
		{"*Money", nil, &field.TypeInfo{Type: field.TypeVariant, Ident: "Money", Reference: true}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTypeInfo(tt.input, tt.ops)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []struct {
		input string
		ops   []string
	}{
		{"", nil},
		{"*", nil},
		{"int8", []string{"add"}},
		{"Money", []string{"modulo"}},
		{"x.", nil},
		{"map[string]int", nil},
	} {
		_, err := ParseTypeInfo(bad.input, bad.ops)
		assert.Error(t, err, bad.input)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.variant.yaml", "a.variant.yml", "variantgen.yaml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("types: []"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.variant.yaml"), 0o755))

	explicit := filepath.Join(dir, "variantgen.yaml")
	files, err := (&Config{Paths: []string{dir, explicit, dir}}).Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.variant.yml"),
		filepath.Join(dir, "b.variant.yaml"),
		explicit,
	}, files)
}

func TestMarshal(t *testing.T) {
	types := loadValid(t)
	var list []*gen.TypeDescriptor
	for _, name := range []string{"Money", "Quantity", "Currency", "Shape", "Price", "Result"} {
		list = append(list, types[name])
	}
	buf, err := Marshal(list)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "switch_methods: default-with-partial-overloads")
	assert.Contains(t, string(buf), "type: example.com/shop/domain.Money")

	again, err := Parse("resolved.yaml", buf, "")
	require.NoError(t, err)
	require.Len(t, again, len(list))
	for i, d := range again {
		orig := list[i]
		assert.Equal(t, orig.Name, d.Name)
		assert.Equal(t, gen.Resolve(orig.Flags, orig), gen.Resolve(d.Flags, d), d.Name)
		assert.Equal(t, orig.Cases, d.Cases, d.Name)
		assert.Equal(t, orig.Items, d.Items, d.Name)
	}
}
