package variantgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/variantgen"
)

func TestParseError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := variantgen.NewParseError("Amount", "abc", nil)
		assert.Equal(t, `variantgen: cannot parse "abc" as Amount`, err.Error())
	})

	t.Run("ErrorWithCause", func(t *testing.T) {
		err := variantgen.NewParseError("Amount", "abc", errors.New("invalid syntax"))
		assert.Equal(t, `variantgen: cannot parse "abc" as Amount: invalid syntax`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := variantgen.NewParseError("Amount", "abc", nil)
		assert.True(t, errors.Is(err, variantgen.ErrParse))
		assert.False(t, errors.Is(err, variantgen.ErrNilKey))
	})

	t.Run("IsParseError", func(t *testing.T) {
		err := variantgen.NewParseError("Amount", "abc", nil)
		assert.True(t, variantgen.IsParseError(err))
		assert.True(t, variantgen.IsParseError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, variantgen.IsParseError(errors.New("other error")))
		assert.False(t, variantgen.IsParseError(nil))
	})
}

func TestUnknownCaseError(t *testing.T) {
	err := variantgen.NewUnknownCaseError("Shape", 0)
	assert.Equal(t, "variantgen: Shape holds unknown case index 0", err.Error())
	assert.True(t, errors.Is(err, variantgen.ErrUnknownCase))
}

func TestNilKeyError(t *testing.T) {
	err := variantgen.NewNilKeyError("Amount", "Add")
	assert.Equal(t, "variantgen: nil key operand for Amount.Add", err.Error())
	assert.True(t, errors.Is(err, variantgen.ErrNilKey))
}

func TestValidationError(t *testing.T) {
	t.Run("nil cause", func(t *testing.T) {
		assert.NoError(t, variantgen.NewValidationError("Amount", nil))
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := variantgen.NewValidationError("Amount", cause)
		assert.Equal(t, "variantgen: invalid Amount: must be positive", err.Error())
		assert.True(t, errors.Is(err, variantgen.ErrValidation))
		assert.True(t, errors.Is(err, cause))
		assert.True(t, variantgen.IsValidationError(err))
	})
}
