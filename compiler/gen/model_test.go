package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

const postModel = `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Factories\HasFactory;
use Illuminate\Database\Eloquent\Model;
use Illuminate\Database\Eloquent\SoftDeletes;

class Post extends Model
{
    use HasFactory, SoftDeletes;

    protected $fillable = [
        'title',
        'body'
    ];

    public function user()
    {
        return $this->belongsTo(User::class);
    }

    public function categorys()
    {
        return $this->belongsToMany(Category::class);
    }
}
`

const personModel = `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Factories\HasFactory;
use Illuminate\Database\Eloquent\Model;

class Person extends Model
{
    use HasFactory;

    protected $table = 'people';

    public $timestamps = false;

    protected $fillable = [
    ];
}
`

func TestModelCode(t *testing.T) {
	t.Run("soft deletes and relationships", func(t *testing.T) {
		m := &schema.Model{
			Name:        "Post",
			Timestamps:  true,
			SoftDeletes: true,
			Fields: []*field.Descriptor{
				field.String("title").Descriptor(),
				field.Text("body").Descriptor(),
			},
			Relationships: []*edge.Descriptor{
				edge.BelongsTo("User").Descriptor(),
				edge.MorphTo("Commentable").Descriptor(),
				edge.BelongsToMany("Category").Descriptor(),
			},
		}
		code, err := ModelCode(m, []*schema.Model{m})
		require.NoError(t, err)
		assert.Equal(t, postModel, code)
	})

	t.Run("table name and disabled timestamps", func(t *testing.T) {
		code, err := ModelCode(&schema.Model{Name: "Person", TableName: "people"}, nil)
		require.NoError(t, err)
		assert.Equal(t, personModel, code)
	})

	t.Run("timestamps omit property", func(t *testing.T) {
		code, err := ModelCode(&schema.Model{Name: "Tag", Timestamps: true}, nil)
		require.NoError(t, err)
		assert.NotContains(t, code, "$timestamps")
		assert.NotContains(t, code, "SoftDeletes")
		assert.NotContains(t, code, "protected $table")
	})

	t.Run("fillable keeps field order", func(t *testing.T) {
		m := &schema.Model{
			Name: "User",
			Fields: []*field.Descriptor{
				field.String("zeta").Descriptor(),
				field.String("alpha").Descriptor(),
			},
		}
		code, err := ModelCode(m, nil)
		require.NoError(t, err)
		assert.Contains(t, code, "        'zeta',\n        'alpha'\n    ];")
	})

	t.Run("custom namespace", func(t *testing.T) {
		code, err := modelCode(&schema.Model{Name: "User"}, `Domain\Users`)
		require.NoError(t, err)
		assert.Contains(t, code, "namespace Domain\\Users;\n")
	})

	t.Run("empty model name", func(t *testing.T) {
		_, err := ModelCode(&schema.Model{}, nil)
		assert.True(t, IsSchemaError(err))
	})
}
