package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/variantgen/schema/field"
)

func TestGenerateDispatch(t *testing.T) {
	t.Run("default shapes", func(t *testing.T) {
		m := GenerateDispatch(NewInput(unionType(t), nil))
		require.NotNil(t, m)
		assert.Equal(t, []string{
			"Switch",
			"SwitchShapeWithState",
			"SwitchShapeFunc",
			"SwitchShapeFuncWithState",
			"MapShape",
		}, m.Names())
	})

	t.Run("partial shapes", func(t *testing.T) {
		d := unionType(t)
		d.Flags = FeatureFlags{
			SwitchMethods: DispatchDefaultWithPartialOverloads,
			MapMethods:    DispatchDefaultWithPartialOverloads,
		}
		m := GenerateDispatch(NewInput(d, nil))
		assert.Equal(t, []string{
			"Switch",
			"SwitchShapeWithState",
			"SwitchShapeFunc",
			"SwitchShapeFuncWithState",
			"SwitchPartially",
			"SwitchShapePartiallyWithState",
			"SwitchShapeFuncPartially",
			"SwitchShapeFuncPartiallyWithState",
			"MapShape",
			"MapShapePartially",
		}, m.Names())
	})

	t.Run("map only", func(t *testing.T) {
		d := unionType(t)
		d.Flags.SwitchMethods = DispatchNone
		m := GenerateDispatch(NewInput(d, nil))
		assert.Equal(t, []string{"MapShape"}, m.Names())
	})

	t.Run("disabled", func(t *testing.T) {
		d := unionType(t)
		d.Flags = FeatureFlags{SwitchMethods: DispatchNone, MapMethods: DispatchNone}
		assert.Nil(t, GenerateDispatch(NewInput(d, nil)))
	})
}

func TestDispatchHandlers(t *testing.T) {
	d := unionType(t)
	d.Flags = FeatureFlags{
		SwitchMethods: DispatchDefaultWithPartialOverloads,
		MapMethods:    DispatchDefaultWithPartialOverloads,
	}
	m := GenerateDispatch(NewInput(d, nil))

	t.Run("exhaustive", func(t *testing.T) {
		for _, name := range []string{"Switch", "SwitchShapeWithState", "SwitchShapeFunc", "SwitchShapeFuncWithState", "MapShape"} {
			s, ok := m.Member(name)
			require.True(t, ok, name)
			r := s.Rule.(DispatchRule)
			assert.False(t, r.Partial)
			// One handler per case, in declaration order.
			require.Len(t, r.Handlers, len(d.Cases), name)
			for i, h := range r.Handlers {
				assert.Equal(t, d.Cases[i].Index, h.Case.Index)
			}
			assert.Empty(t, r.Default)
		}
	})

	t.Run("handler arity", func(t *testing.T) {
		s, _ := m.Member("Switch")
		handlers := params(s, RoleHandler)
		require.Len(t, handlers, 2)
		assert.Equal(t, "circle", handlers[0].Name)
		assert.Equal(t, FuncRef([]TypeRef{FieldRef(d.Cases[0].Type)}, nil), handlers[0].Type)
		assert.Equal(t, "empty", handlers[1].Name)
		assert.Equal(t, FuncRef(nil, nil), handlers[1].Type)
		assert.Equal(t, Method, s.Kind)
	})

	t.Run("state first", func(t *testing.T) {
		s, _ := m.Member("SwitchShapeFuncWithState")
		assert.Equal(t, Function, s.Kind)
		require.Len(t, s.Params, 4)
		assert.Equal(t, RoleOperand, s.Params[0].Role)
		assert.Equal(t, RoleState, s.Params[1].Role)
		assert.Equal(t, "state", s.Params[1].Name)
		state, result := TypeParamRef("S"), TypeParamRef("R")
		assert.Equal(t, FuncRef([]TypeRef{state, FieldRef(d.Cases[0].Type)}, []TypeRef{result}), s.Params[2].Type)
		assert.Equal(t, FuncRef([]TypeRef{state}, []TypeRef{result}), s.Params[3].Type)
		assert.Equal(t, []TypeRef{result}, s.Results)
		require.Len(t, s.TypeParams, 2)
		assert.Equal(t, "S", s.TypeParams[0].Name)
		assert.Equal(t, "R", s.TypeParams[1].Name)
	})

	t.Run("partial default", func(t *testing.T) {
		s, _ := m.Member("SwitchShapePartiallyWithState")
		r := s.Rule.(DispatchRule)
		assert.True(t, r.Partial)
		assert.Equal(t, "default_", r.Default)
		defaults := params(s, RoleDefault)
		require.Len(t, defaults, 1)
		assert.Equal(t, FuncRef([]TypeRef{TypeParamRef("S"), Self()}, nil), defaults[0].Type)
		require.Len(t, r.Handlers, len(d.Cases))
	})

	t.Run("partial map", func(t *testing.T) {
		s, _ := m.Member("MapShapePartially")
		result := TypeParamRef("R")
		assert.Equal(t, result, params(s, RoleDefault)[0].Type)
		for _, p := range params(s, RoleHandler) {
			assert.Equal(t, OptionalRef(result), p.Type)
		}
	})
}

func TestDispatchNaming(t *testing.T) {
	t.Run("reserved case names", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Token",
			Cases: []CaseMember{
				{Type: &field.TypeInfo{Type: field.TypeString}},
				{Name: "Type", Type: &field.TypeInfo{Type: field.TypeInt32}},
				{Name: "Value", Stateless: true},
				{Name: "Default", Stateless: true},
			},
		})
		require.NoError(t, err)
		m := GenerateDispatch(NewInput(d, nil))
		s, _ := m.Member("SwitchTokenWithState")
		var names []string
		for _, p := range s.Params {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"value", "state", "string_", "type_", "value_", "default_"}, names)

		partial, _ := GenerateDispatch(NewInput(withFlags(d, FeatureFlags{SwitchMethods: DispatchDefaultWithPartialOverloads}), nil)).Member("SwitchPartially")
		names = names[:0]
		for _, p := range partial.Params {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"default__", "string_", "type_", "value_", "default_"}, names)
	})

	t.Run("state parameter name", func(t *testing.T) {
		d := withFlags(unionType(t), FeatureFlags{StateParameterName: "Circle"})
		s, _ := GenerateDispatch(NewInput(d, nil)).Member("SwitchShapeWithState")
		// Handlers are named first; the state parameter yields to them.
		assert.Equal(t, "circle", s.Rule.(DispatchRule).Handlers[0].Param)
		assert.Equal(t, "circle_", s.Rule.(DispatchRule).State)
	})

	t.Run("type parameter names", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name:       "Either",
			Cases:      []CaseMember{{Name: "Left", Type: &field.TypeInfo{Type: field.TypeVariant, Ident: "R"}}},
			TypeParams: []TypeParam{{Name: "R", Constraints: []string{"comparable"}}},
		})
		require.NoError(t, err)
		s, _ := GenerateDispatch(NewInput(d, nil)).Member("MapEither")
		require.Len(t, s.TypeParams, 2)
		assert.Equal(t, "R", s.TypeParams[0].Name)
		assert.Equal(t, "R_", s.TypeParams[1].Name)
	})
}

func TestDispatchViolations(t *testing.T) {
	t.Run("without cases", func(t *testing.T) {
		d := withFlags(keyType(t, field.TypeInt32), FeatureFlags{SwitchMethods: DispatchDefault, MapMethods: DispatchDefault})
		c := &Collector{}
		assert.Nil(t, GenerateDispatch(NewInput(d, c)))
		vs := c.Violations()
		require.Len(t, vs, 2)
		for _, v := range vs {
			assert.Equal(t, ViolationDispatchWithoutCases, v.Kind)
		}
		assert.Equal(t, "map_methods", vs[0].Option)
		assert.Equal(t, "switch_methods", vs[1].Option)
	})

	t.Run("duplicate auto names", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name: "Pair",
			Cases: []CaseMember{
				{Type: &field.TypeInfo{Type: field.TypeFloat64}},
				{Type: &field.TypeInfo{Type: field.TypeFloat64}},
			},
		})
		require.NoError(t, err, "duplicate names are not a descriptor error")
		c := &Collector{}
		in := NewInput(d, c)
		assert.Nil(t, GenerateDispatch(in))
		assert.Nil(t, GenerateFactory(in))
		require.NotEmpty(t, c.Violations())
		for _, v := range c.Violations() {
			assert.Equal(t, ViolationDuplicateCaseName, v.Kind)
		}
		// Features not depending on case names are still generated.
		assert.NotNil(t, GenerateEquality(in))
		assert.NotNil(t, GenerateHash(in))
		assert.NotNil(t, GenerateFormat(in))
	})

	t.Run("names colliding once exported", func(t *testing.T) {
		tests := []struct {
			name string
			d    TypeDescriptor
			dup  string
		}{
			{
				name: "cases",
				d: TypeDescriptor{
					Name: "Shape",
					Cases: []CaseMember{
						{Name: "foo_bar", Type: &field.TypeInfo{Type: field.TypeInt32}},
						{Name: "FooBar", Type: &field.TypeInfo{Type: field.TypeString}},
					},
				},
				dup: "FooBar",
			},
			{
				name: "items",
				d: TypeDescriptor{
					Name:  "Color",
					Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeString}},
					Items: []Item{{Name: "red_x", Value: "r"}, {Name: "RedX", Value: "R"}},
				},
				dup: "RedX",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				d, err := NewTypeDescriptor(tt.d)
				require.NoError(t, err)
				c := &Collector{}
				in := NewInput(d, c)
				assert.Nil(t, GenerateDispatch(in))
				assert.Nil(t, GenerateFactory(in))
				if d.Shape() == CaseBased {
					assert.Equal(t, []string{"Index"}, GenerateAccessors(in).Names())
				}
				vs := c.Violations()
				require.NotEmpty(t, vs)
				for _, v := range vs {
					assert.Equal(t, ViolationDuplicateCaseName, v.Kind)
					assert.Contains(t, v.Message, tt.dup)
				}
			})
		}
	})

	t.Run("items", func(t *testing.T) {
		d, err := NewTypeDescriptor(TypeDescriptor{
			Name:  "Currency",
			Key:   &KeyMember{Type: &field.TypeInfo{Type: field.TypeString}},
			Items: []Item{{Name: "Usd", Value: "USD"}, {Name: "Eur", Value: "EUR"}},
		})
		require.NoError(t, err)
		s, ok := GenerateDispatch(NewInput(d, nil)).Member("Switch")
		require.True(t, ok)
		r := s.Rule.(DispatchRule)
		assert.True(t, r.Items)
		require.Len(t, r.Handlers, 2)
		assert.Equal(t, "usd", r.Handlers[0].Param)
		assert.Equal(t, Stateless, r.Handlers[0].Case.Kind())
	})
}

func params(s MemberSignature, role ParamRole) []Param {
	var ps []Param
	for _, p := range s.Params {
		if p.Role == role {
			ps = append(ps, p)
		}
	}
	return ps
}

func withFlags(d *TypeDescriptor, f FeatureFlags) *TypeDescriptor {
	c := *d
	c.Flags = f
	return &c
}
