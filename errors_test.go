package blueprint_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := blueprint.NewNotFoundError("model")
		assert.Equal(t, "blueprint: model not found", err.Error())
	})

	t.Run("Error with ID", func(t *testing.T) {
		err := blueprint.NewNotFoundErrorWithID("project", "p1")
		assert.Equal(t, "blueprint: project not found (id=p1)", err.Error())
		assert.Equal(t, "project", err.Label())
		assert.Equal(t, "p1", err.ID())
	})

	t.Run("Is", func(t *testing.T) {
		err := blueprint.NewNotFoundError("field")
		assert.True(t, errors.Is(err, blueprint.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := blueprint.NewNotFoundError("relationship")
		assert.True(t, blueprint.IsNotFound(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, blueprint.IsNotFound(wrapped))

		assert.True(t, blueprint.IsNotFound(blueprint.ErrNotFound))

		assert.False(t, blueprint.IsNotFound(errors.New("other error")))
		assert.False(t, blueprint.IsNotFound(nil))
	})
}

func TestValidationError(t *testing.T) {
	cause := errors.New("name must not be empty")
	err := blueprint.NewValidationError("Post", cause)

	assert.Equal(t, `blueprint: validation failed for "Post": name must not be empty`, err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, blueprint.ErrInvalid))
	assert.True(t, blueprint.IsValidationError(fmt.Errorf("load: %w", err)))
	assert.False(t, blueprint.IsValidationError(cause))
	assert.False(t, blueprint.IsValidationError(nil))
}

func TestAggregateError(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		assert.NoError(t, blueprint.NewAggregateError())
		assert.NoError(t, blueprint.NewAggregateError(nil, nil))
	})

	t.Run("single error returned as is", func(t *testing.T) {
		e := errors.New("only")
		assert.Equal(t, e, blueprint.NewAggregateError(nil, e))
	})

	t.Run("multiple errors", func(t *testing.T) {
		e1 := blueprint.NewValidationError("A", errors.New("bad"))
		e2 := errors.New("worse")
		err := blueprint.NewAggregateError(e1, e2)
		require.Error(t, err)

		var agg *blueprint.AggregateError
		require.True(t, errors.As(err, &agg))
		assert.Len(t, agg.Errors, 2)
		assert.Contains(t, err.Error(), "blueprint: multiple errors:")
		assert.Contains(t, err.Error(), "[1]")
		assert.Contains(t, err.Error(), "[2] worse")
		assert.True(t, errors.Is(err, e2))
		assert.True(t, blueprint.IsValidationError(err))
	})

	t.Run("empty aggregate message", func(t *testing.T) {
		assert.Equal(t, "blueprint: no errors", (&blueprint.AggregateError{}).Error())
	})
}
