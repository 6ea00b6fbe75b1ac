package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

func TestSnapshot(t *testing.T) {
	t.Run("builder chains", func(t *testing.T) {
		models := []*schema.Model{
			{
				ID:         "m1",
				Name:       "User",
				TableName:  "members",
				Timestamps: true,
				Fields: []*field.Descriptor{
					field.String("email").ID("f1").Length("191").Unique().Descriptor(),
					field.Decimal("balance").Length("8,2").Nullable().Default("0").Descriptor(),
				},
				Relationships: []*edge.Descriptor{
					edge.HasMany("Post").ForeignKey("author_id").Descriptor(),
					edge.MorphMany("Image").Morph("imageable_type", "imageable_id").Descriptor(),
				},
			},
		}

		out, err := Snapshot("models", models)
		require.NoError(t, err)
		src := string(out)

		assert.True(t, strings.HasPrefix(src, "// Code generated by blueprint, DO NOT EDIT.\n"))
		assert.Contains(t, src, "package models")
		assert.Contains(t, src, `"github.com/syssam/blueprint/schema/field"`)
		assert.Contains(t, src, "var Models = []*schema.Model{")
		assert.Contains(t, src, `field.New("email", field.Type("string")).ID("f1").Length("191").Unique().Descriptor()`)
		assert.Contains(t, src, `field.New("balance", field.Type("decimal")).Length("8,2").Nullable().Default("0").Descriptor()`)
		assert.Contains(t, src, `edge.New(edge.Kind("hasMany"), "Post").ForeignKey("author_id").Descriptor()`)
		assert.Contains(t, src, `edge.New(edge.Kind("morphMany"), "Image").Morph("imageable_type", "imageable_id").Descriptor()`)
		assert.Contains(t, src, `"members"`)
	})

	t.Run("no models", func(t *testing.T) {
		out, err := Snapshot("models", nil)
		require.NoError(t, err)
		assert.Contains(t, string(out), "var Models = []*schema.Model{}")
	})

	t.Run("empty package", func(t *testing.T) {
		_, err := Snapshot("", nil)
		assert.True(t, IsConfigError(err))
	})
}
