package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/variantgen/schema/field"
)

func TestCastRequired(t *testing.T) {
	tests := []struct {
		typ  field.Type
		cast bool
	}{
		{field.TypeInt8, true},
		{field.TypeUint8, true},
		{field.TypeInt16, true},
		{field.TypeUint16, true},
		{field.TypeChar, true},
		{field.TypeInt32, false},
		{field.TypeUint32, false},
		{field.TypeInt64, false},
		{field.TypeUint64, false},
		{field.TypeFloat32, false},
		{field.TypeFloat64, false},
		{field.TypeDecimal, false},
		{field.TypeVariant, false},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.cast, CastRequired(tt.typ))
		})
	}
}

func TestGenerateArithmetic(t *testing.T) {
	t.Run("cast", func(t *testing.T) {
		in := NewInput(keyType(t, field.TypeInt16), nil)
		m := GenerateArithmetic(in)
		require.NotNil(t, m)
		assert.Equal(t, []string{"Add", "Sub", "Mul", "Div"}, m.Names())
		for _, s := range m.Members {
			r := s.Rule.(OperatorRule)
			assert.True(t, r.NeedsCast)
			assert.Equal(t, field.TypeInt32, r.Via)
			assert.Equal(t, NullNone, r.Null)
			assert.Equal(t, Method, s.Kind)
			assert.Equal(t, []TypeRef{Self()}, s.Results)
		}
	})

	t.Run("no cast", func(t *testing.T) {
		in := NewInput(keyType(t, field.TypeInt64), nil)
		m := GenerateArithmetic(in)
		sub, ok := m.Member("Sub")
		require.True(t, ok)
		r := sub.Rule.(OperatorRule)
		assert.False(t, r.NeedsCast)
		assert.Equal(t, field.TypeInt64, r.Via)
	})

	t.Run("nested variant", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Price",
			Key:  &KeyMember{Type: &field.TypeInfo{Type: field.TypeVariant, Ident: "Money", Ops: field.AllArithmetic}},
		})
		require.NoError(t, err)
		m := GenerateArithmetic(NewInput(d, nil))
		require.Len(t, m.Members, 4)
		assert.False(t, m.Members[0].Rule.(OperatorRule).NeedsCast)
	})

	t.Run("key type overloads", func(t *testing.T) {
		d := keyType(t, field.TypeInt8)
		d.Flags = FeatureFlags{
			AdditionOperators:    OperatorsDefaultWithKeyTypeOverloads,
			SubtractionOperators: OperatorsNone,
			MultiplyOperators:    OperatorsNone,
			DivisionOperators:    OperatorsNone,
		}
		m := GenerateArithmetic(NewInput(d, nil))
		assert.Equal(t, []string{"Add", "AddKey", "MoneyKeyAdd"}, m.Names())
		fn := m.Members[2]
		assert.Equal(t, Function, fn.Kind)
		require.Len(t, fn.Params, 2)
		assert.Equal(t, RoleKey, fn.Params[0].Role)
		assert.Equal(t, RoleOperand, fn.Params[1].Role)
		r := fn.Rule.(OperatorRule)
		assert.Equal(t, Key, r.Left)
		assert.Equal(t, Wrapper, r.Right)
	})

	t.Run("reference key panics on absent operands", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Amount",
			Key:  &KeyMember{Type: &field.TypeInfo{Type: field.TypeInt8}, Nullable: true},
		})
		require.NoError(t, err)
		m := GenerateArithmetic(NewInput(d, nil))
		for _, s := range m.Members {
			assert.Equal(t, NullPanics, s.Rule.(OperatorRule).Null)
		}
	})

	t.Run("unsupported key", func(t *testing.T) {
		d := keyType(t, field.TypeString)
		d.Flags.AdditionOperators = OperatorsDefault
		c := &Collector{}
		m := GenerateArithmetic(NewInput(d, c))
		assert.Empty(t, m.Members)
		vs := c.Violations()
		require.Len(t, vs, 1)
		assert.Equal(t, ViolationOperatorUnsupported, vs[0].Kind)
		assert.Equal(t, "addition_operators", vs[0].Option)
	})

	t.Run("union", func(t *testing.T) {
		d := unionType(t)
		d.Flags.DivisionOperators = OperatorsDefault
		c := &Collector{}
		m := GenerateArithmetic(NewInput(d, c))
		assert.Empty(t, m.Members)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, ViolationOperatorOnUnion, c.Violations()[0].Kind)
	})
}

func TestGenerateComparison(t *testing.T) {
	t.Run("key", func(t *testing.T) {
		m := GenerateComparison(NewInput(keyType(t, field.TypeInt32), nil))
		assert.Equal(t, []string{"Eq", "Ne", "Lt", "Le", "Gt", "Ge", "Compare"}, m.Names())
		cmp, _ := m.Member("Compare")
		assert.Equal(t, []TypeRef{Builtin("int")}, cmp.Results)
		lt, _ := m.Member("Lt")
		assert.Equal(t, []TypeRef{Builtin("bool")}, lt.Results)
	})

	t.Run("key type overloads", func(t *testing.T) {
		d := keyType(t, field.TypeInt32)
		d.Flags = FeatureFlags{EqualityOperators: OperatorsDefaultWithKeyTypeOverloads, ComparisonOperators: OperatorsNone}
		m := GenerateComparison(NewInput(d, nil))
		assert.Equal(t, []string{"Eq", "Ne", "EqKey", "NeKey", "MoneyKeyEq", "MoneyKeyNe"}, m.Names())
	})

	t.Run("union equality", func(t *testing.T) {
		m := GenerateComparison(NewInput(unionType(t), nil))
		assert.Equal(t, []string{"Eq", "Ne"}, m.Names())
	})

	t.Run("union ordering", func(t *testing.T) {
		d := unionType(t)
		d.Flags.ComparisonOperators = OperatorsDefault
		c := &Collector{}
		m := GenerateComparison(NewInput(d, c))
		assert.Equal(t, []string{"Eq", "Ne"}, m.Names())
		require.Equal(t, 1, c.Len())
		assert.Equal(t, ViolationOperatorOnUnion, c.Violations()[0].Kind)
		assert.Equal(t, "comparison_operators", c.Violations()[0].Option)
	})

	t.Run("union key overloads", func(t *testing.T) {
		d := unionType(t)
		d.Flags.EqualityOperators = OperatorsDefaultWithKeyTypeOverloads
		c := &Collector{}
		m := GenerateComparison(NewInput(d, c))
		assert.Empty(t, m.Members)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("unordered key", func(t *testing.T) {
		d := keyType(t, field.TypeBool)
		d.Flags.ComparisonOperators = OperatorsDefault
		c := &Collector{}
		m := GenerateComparison(NewInput(d, c))
		assert.Equal(t, []string{"Eq", "Ne"}, m.Names())
		assert.Equal(t, ViolationOperatorUnsupported, c.Violations()[0].Kind)
	})

	t.Run("comparer without equality", func(t *testing.T) {
		tests := []struct {
			name string
			d    *TypeDescriptor
			want []string
		}{
			{"ignorecase on integer key", withFlags(keyType(t, field.TypeInt32), FeatureFlags{Comparer: "ignorecase"}), []string{"Lt", "Le", "Gt", "Ge", "Compare"}},
			{"custom comparer on union", withFlags(unionType(t), FeatureFlags{Comparer: "Collation"}), []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := &Collector{}
				in := NewInput(tt.d, c)
				assert.Nil(t, GenerateEquality(in))
				m := GenerateComparison(in)
				assert.Equal(t, tt.want, m.Names())
				// Reported once, by the equality generator.
				require.Equal(t, 1, c.Len())
				assert.Equal(t, ViolationComparerUnsupported, c.Violations()[0].Kind)

				d := *tt.d
				d.Flags.SkipEqualityMethods = true
				c = &Collector{}
				m = GenerateComparison(NewInput(&d, c))
				assert.Equal(t, tt.want, m.Names())
				require.Equal(t, 1, c.Len())
				assert.Equal(t, ViolationComparerUnsupported, c.Violations()[0].Kind)
			})
		}
	})

	t.Run("null handling", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name:     "Label",
			Key:      &KeyMember{Type: &field.TypeInfo{Type: field.TypeString}},
			Nullable: true,
		})
		require.NoError(t, err)
		m := GenerateComparison(NewInput(d, nil))
		eq, _ := m.Member("Eq")
		assert.Equal(t, NullAsUnequal, eq.Rule.(OperatorRule).Null)
		lt, _ := m.Member("Lt")
		assert.Equal(t, NullSortsFirst, lt.Rule.(OperatorRule).Null)
	})
}

func TestOperatorName(t *testing.T) {
	d := &TypeDescriptor{Name: "Money"}
	assert.Equal(t, "Lt", OperatorName(d, OpLt, Wrapper, Wrapper))
	assert.Equal(t, "LtKey", OperatorName(d, OpLt, Wrapper, Key))
	assert.Equal(t, "MoneyKeyLt", OperatorName(d, OpLt, Key, Wrapper))
}
