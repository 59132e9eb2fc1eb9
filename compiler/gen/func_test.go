package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Money", "money"},
		{"ShapeKind", "shape_kind"},
		{"HTTPCode", "http_code"},
		{"OrderID", "order_id"},
		{"XMLParser", "xml_parser"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"ABC", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, snake(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"circle", "Circle"},
		{"Circle", "Circle"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"a_b", "AB"},
		{"api_url", "APIURL"},
		{"float64", "Float64"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"user_id", "userID"},
		{"http_code", "httpCode"},
		{"already", "already"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camel(tt.input))
		})
	}
}

func TestReceiver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Money", "m"},
		{"ShapeKind", "sk"},
		{"[]Money", "m"},
		{"*Money", "m"},
		{"HTTPClient", "hc"},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, receiver(tt.input))
		})
	}
}

func TestReceiverName(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		assert.Equal(t, "m", ReceiverName("Money", MemberSignature{}))
	})

	t.Run("avoids parameters", func(t *testing.T) {
		sig := MemberSignature{Params: []Param{{Name: "m"}}}
		assert.Equal(t, "_m", ReceiverName("Money", sig))
	})

	t.Run("avoids generated locals", func(t *testing.T) {
		assert.Equal(t, "_n", ReceiverName("N", MemberSignature{}))
	})
}

func TestPlural(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "Users"},
		{"Currency", "Currencies"},
		{"Status", "Statuses"},
		{"Sheep", "SheepSlice"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, plural(tt.input))
		})
	}
}

func TestParamName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Circle", "circle"},
		{"Float64", "float64_"},
		{"String", "string_"},
		{"Type", "type_"},
		{"Default", "default_"},
		{"Value", "value_"},
		{"State", "state"},
		{"Key", "key_"},
		{"Err", "err_"},
		{"Ok", "ok_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, paramName(tt.input))
		})
	}
}

func TestDescriptorNames(t *testing.T) {
	d := &TypeDescriptor{Name: "Currency"}
	assert.Equal(t, "CurrencyUsd", d.ItemIdent("usd"))
	assert.Equal(t, "CurrencyID", d.ItemIdent("id"))
	assert.Equal(t, "NewCurrency", d.FactoryName())
	assert.Equal(t, "NewCurrencyEuro", d.CaseFactoryName(CaseMember{Name: "Euro"}))
	assert.Equal(t, "CurrencyFromKey", d.FromKeyName())
	assert.Equal(t, "AllCurrencies", d.AllName())
	assert.Equal(t, "ParseCurrency", d.ParseName())
	assert.Equal(t, "currency_variant.go", FileName(d))
}
