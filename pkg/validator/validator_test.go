package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursehub/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "Jane"),
			validator.ValidEmail("email", "jane@example.com"),
			validator.MinLen("password", "pass1234", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
			validator.MinLen("password", "short", 8),
			validator.Equal("passwordConfirm", "a", "b", "passwords are not the same"),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		var ve validator.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"name", "email", "password", "passwordConfirm"}, ve.Fields())
		assert.Equal(t, []string{"passwords are not the same"}, ve.Get("passwordConfirm"))
		assert.True(t, ve.Has("email"))
		assert.False(t, ve.Has("role"))
	})

	t.Run("wrapped errors are still recognised", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.Required("name", ""))
		assert.True(t, validator.IsValidationError(fmt.Errorf("register: %w", err)))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "jane.doe+tag@example.com", "x@sub.example.org"}
	invalid := []string{"", "plain", "@example.com", "a@localhost", "a@.com", "a@example.", "Jane <jane@example.com>", "a@ex..com"}

	for _, v := range valid {
		assert.True(t, validator.ValidEmail("email", v).Check(), v)
	}
	for _, v := range invalid {
		assert.False(t, validator.ValidEmail("email", v).Check(), v)
	}
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MinLen("f", "пароль12", 8).Check())
	assert.False(t, validator.MaxLen("f", "abcdef", 5).Check())
	assert.True(t, validator.MaxLen("f", "abcde", 5).Check())
	assert.False(t, validator.MaxBytes("f", "пароль", 6).Check())
}

func TestOneOfAndWhen(t *testing.T) {
	t.Parallel()

	roles := []string{"user", "premium"}
	assert.True(t, validator.OneOf("role", "user", roles).Check())
	assert.False(t, validator.OneOf("role", "admin", roles).Check())

	assert.True(t, validator.When(false, validator.Required("f", "")).Check())
	assert.False(t, validator.When(true, validator.Required("f", "")).Check())
}
