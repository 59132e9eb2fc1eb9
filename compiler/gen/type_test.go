package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/variantgen/schema/field"
)

func TestNewTypeDescriptor(t *testing.T) {
	str := &field.TypeInfo{Type: field.TypeString}
	tests := []struct {
		name    string
		input   TypeDescriptor
		wantErr string
	}{
		{
			name:    "missing name",
			input:   TypeDescriptor{Key: &KeyMember{Type: str}},
			wantErr: "missing type name",
		},
		{
			name:    "unexported name",
			input:   TypeDescriptor{Name: "money", Key: &KeyMember{Type: str}},
			wantErr: "must be exported",
		},
		{
			name:    "invalid name",
			input:   TypeDescriptor{Name: "Mon-ey", Key: &KeyMember{Type: str}},
			wantErr: "not a valid identifier",
		},
		{
			name: "key and cases",
			input: TypeDescriptor{
				Name:  "Money",
				Key:   &KeyMember{Type: str},
				Cases: []CaseMember{{Name: "A", Type: str}},
			},
			wantErr: "both a key and cases",
		},
		{
			name:    "neither key nor cases",
			input:   TypeDescriptor{Name: "Money"},
			wantErr: "a key or at least one case",
		},
		{
			name: "items on generic type",
			input: TypeDescriptor{
				Name:       "Money",
				Key:        &KeyMember{Type: &field.TypeInfo{Type: field.TypeVariant, Ident: "T"}},
				Items:      []Item{{Name: "Zero", Value: "0"}},
				TypeParams: []TypeParam{{Name: "T", Constraints: []string{"comparable"}}},
			},
			wantErr: "generic type",
		},
		{
			name:    "key without type",
			input:   TypeDescriptor{Name: "Money", Key: &KeyMember{}},
			wantErr: "no valid type",
		},
		{
			name:    "nested key without ident",
			input:   TypeDescriptor{Name: "Money", Key: &KeyMember{Type: &field.TypeInfo{Type: field.TypeVariant}}},
			wantErr: "must name its type",
		},
		{
			name:    "unnamed stateless case",
			input:   TypeDescriptor{Name: "Shape", Cases: []CaseMember{{Name: "A", Type: str}, {Stateless: true}}},
			wantErr: "stateless case 2 must be named",
		},
		{
			name:    "invalid case name",
			input:   TypeDescriptor{Name: "Shape", Cases: []CaseMember{{Name: "a b", Type: str}}},
			wantErr: "case name",
		},
		{
			name:    "only stateless cases",
			input:   TypeDescriptor{Name: "Shape", Cases: []CaseMember{{Name: "A", Stateless: true}}},
			wantErr: "at least one case must carry state",
		},
		{
			name: "invalid item value",
			input: TypeDescriptor{
				Name:  "Level",
				Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeInt8}},
				Items: []Item{{Name: "High", Value: "300"}},
			},
			wantErr: "invalid item",
		},
		{
			name: "item on reference key",
			input: TypeDescriptor{
				Name:  "Level",
				Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeInt8}, Nullable: true},
				Items: []Item{{Name: "High", Value: "3"}},
			},
			wantErr: "value semantics",
		},
		{
			name: "duplicate type parameter",
			input: TypeDescriptor{
				Name:       "Pair",
				Cases:      []CaseMember{{Name: "A", Type: &field.TypeInfo{Type: field.TypeVariant, Ident: "T"}}},
				TypeParams: []TypeParam{{Name: "T"}, {Name: "T"}},
			},
			wantErr: "duplicate type parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewTypeDescriptor(tt.input)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, ErrInvalidDescriptor))
			assert.True(t, IsDescriptorError(err))
		})
	}
}

func TestNewTypeDescriptorDefaults(t *testing.T) {
	t.Run("case names and indices", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Value",
			Cases: []CaseMember{
				{Type: &field.TypeInfo{Type: field.TypeString}},
				{Type: &field.TypeInfo{Type: field.TypeVariant, Ident: "shop.Money", PkgPath: "example.com/shop"}},
				{Name: "None"},
			},
		})
		require.NoError(t, err)
		require.Len(t, d.Cases, 3)
		assert.Equal(t, CaseMember{Index: 1, Name: "String", Type: &field.TypeInfo{Type: field.TypeString}, AutoNamed: true}, d.Cases[0])
		assert.Equal(t, "Money", d.Cases[1].Name)
		assert.Equal(t, Stateless, d.Cases[2].Kind())
		assert.Equal(t, 0, d.Cases[2].Arity())
		assert.Equal(t, 1, d.Cases[0].Arity())
		assert.Equal(t, CaseBased, d.Shape())
		assert.Equal(t, d.Cases[1], d.Case(2))
		assert.Panics(t, func() { d.Case(4) })
	})

	t.Run("reference key", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Amount",
			Key:  &KeyMember{Type: &field.TypeInfo{Type: field.TypeInt64}, Nullable: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "key", d.Key.Name)
		assert.Equal(t, ReferenceSemantics, d.Key.Semantics)
		assert.True(t, d.Key.Type.Reference)
		assert.Equal(t, KeyBased, d.Shape())
		assert.False(t, d.Reference())
	})

	t.Run("frozen", func(t *testing.T) {
		in := TypeDescriptor{
			Name:  "Level",
			Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeInt64}},
			Items: []Item{{Name: "Low", Value: "1"}},
		}
		d, err := NewTypeDescriptor(in)
		require.NoError(t, err)
		in.Items[0].Value = "2"
		in.Key.Name = "changed"
		assert.Equal(t, "1", d.Items[0].Value)
		assert.Equal(t, "key", d.Key.Name)
	})

	t.Run("no default case", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name:          "Signal",
			Cases:         []CaseMember{{Name: "On", Stateless: true}, {Name: "Off", Stateless: true}},
			NoDefaultCase: true,
		})
		require.NoError(t, err)
		assert.Len(t, d.Cases, 2)
	})
}

func TestValidItems(t *testing.T) {
	tests := []struct {
		typ   field.Type
		valid string
		bad   string
	}{
		{field.TypeBool, "true", "yes"},
		{field.TypeChar, "é", "ab"},
		{field.TypeInt8, "-128", "128"},
		{field.TypeUint16, "65535", "-1"},
		{field.TypeInt64, "9223372036854775807", "1.5"},
		{field.TypeFloat32, "1.5", "one"},
		{field.TypeDecimal, "10.25", "1,5"},
		{field.TypeTime, "2024-01-02T03:04:05Z", "2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			build := func(v string) error {
				_, err := NewTypeDescriptor(TypeDescriptor{
					Name:  "Level",
					Key:   &KeyMember{Type: &field.TypeInfo{Type: tt.typ}},
					Items: []Item{{Name: "A", Value: v}},
				})
				return err
			}
			assert.NoError(t, build(tt.valid))
			assert.Error(t, build(tt.bad))
		})
	}
}

func TestTypeDescriptorEqual(t *testing.T) {
	a, b := unionType(t), unionType(t)
	assert.True(t, a.Equal(b))
	assert.NotSame(t, a, b)

	b.Flags.SwitchMethods = DispatchNone
	assert.False(t, a.Equal(b))

	c := unionType(t)
	c.Cases[0].Type = &field.TypeInfo{Type: field.TypeFloat32}
	assert.False(t, a.Equal(c))

	assert.False(t, a.Equal(keyType(t, field.TypeString)))
	assert.False(t, a.Equal(nil))
	var n *TypeDescriptor
	assert.True(t, n.Equal(nil))
}

func TestTypeDescriptorFingerprint(t *testing.T) {
	a, err := unionType(t).Fingerprint()
	require.NoError(t, err)
	b, err := unionType(t).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c, err := keyType(t, field.TypeString).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestDispatchCases(t *testing.T) {
	d, err := NewTypeDescriptor(TypeDescriptor{
		Name:  "Currency",
		Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeString}},
		Items: []Item{{Name: "Usd", Value: "USD"}, {Name: "Eur", Value: "EUR"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []CaseMember{
		{Index: 1, Name: "Usd", Stateless: true},
		{Index: 2, Name: "Eur", Stateless: true},
	}, d.DispatchCases())
	assert.Empty(t, keyType(t, field.TypeString).DispatchCases())
	assert.Equal(t, "Currency(key)", d.String())

	d.Package = "example.com/shop"
	assert.Equal(t, "example.com/shop.Currency", d.QualifiedName())
}
