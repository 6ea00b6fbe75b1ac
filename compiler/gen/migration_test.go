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

const usersMigration = `<?php

use Illuminate\Database\Migrations\Migration;
use Illuminate\Database\Schema\Blueprint;
use Illuminate\Support\Facades\Schema;

return new class extends Migration
{
    /**
     * Run the migrations.
     */
    public function up(): void
    {
        Schema::create('users', function (Blueprint $table) {
            $table->id();
            $table->string('name', 255);
            $table->string('email')->unique();
            $table->timestamps();
        });
    }

    /**
     * Reverse the migrations.
     */
    public function down(): void
    {
        Schema::dropIfExists('users');
    }
};
`

func TestTableMigration(t *testing.T) {
	t.Run("full output", func(t *testing.T) {
		m := &schema.Model{
			Name:       "User",
			Timestamps: true,
			Fields: []*field.Descriptor{
				field.String("name").Length("255").Descriptor(),
				field.String("email").Unique().Descriptor(),
			},
		}
		code, err := TableMigration(m)
		require.NoError(t, err)
		assert.Equal(t, usersMigration, code)
	})

	t.Run("column order", func(t *testing.T) {
		m := &schema.Model{
			Name:        "Post",
			Timestamps:  true,
			SoftDeletes: true,
			Fields: []*field.Descriptor{
				field.String("title").Descriptor(),
			},
			Relationships: []*edge.Descriptor{
				edge.BelongsTo("User").Descriptor(),
				edge.HasMany("Comment").Descriptor(),
			},
		}
		code, err := TableMigration(m)
		require.NoError(t, err)
		assert.Contains(t, code, "Schema::create('posts', function (Blueprint $table) {\n"+
			"            $table->id();\n"+
			"            $table->string('title');\n"+
			"            $table->foreignId('user_id')->constrained('users')->onDelete('cascade');\n"+
			"            $table->timestamps();\n"+
			"            $table->softDeletes();\n"+
			"        });")
		assert.NotContains(t, code, "comment")
	})

	t.Run("no empty lines without extras", func(t *testing.T) {
		code, err := TableMigration(&schema.Model{Name: "Tag"})
		require.NoError(t, err)
		assert.Contains(t, code, "            $table->id();\n        });")
		assert.NotContains(t, code, "timestamps")
		assert.True(t, strings.HasSuffix(code, "};\n"))
		assert.False(t, strings.HasSuffix(code, "\n\n"))
	})

	t.Run("explicit table name", func(t *testing.T) {
		code, err := TableMigration(&schema.Model{Name: "Person", TableName: "people"})
		require.NoError(t, err)
		assert.Contains(t, code, "Schema::create('people'")
		assert.Contains(t, code, "Schema::dropIfExists('people');")
	})

	t.Run("custom foreign key keeps conventional target", func(t *testing.T) {
		m := &schema.Model{
			Name: "Post",
			Relationships: []*edge.Descriptor{
				edge.BelongsTo("User").ForeignKey("author_id").Descriptor(),
			},
		}
		code, err := TableMigration(m)
		require.NoError(t, err)
		assert.Contains(t, code, "$table->foreignId('author_id')->constrained('users')->onDelete('cascade');")
	})

	t.Run("empty model name", func(t *testing.T) {
		_, err := TableMigration(&schema.Model{})
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		_, err = TableMigration(nil)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("deterministic", func(t *testing.T) {
		m := &schema.Model{Name: "User", Fields: []*field.Descriptor{field.Integer("age").Nullable().Descriptor()}}
		a, err := TableMigration(m)
		require.NoError(t, err)
		b, err := TableMigration(m)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestColumn(t *testing.T) {
	tests := []struct {
		name  string
		field *field.Descriptor
		want  string
	}{
		{"plain", field.Text("body").Descriptor(), "$table->text('body');"},
		{"string length", field.String("name").Length("100").Descriptor(), "$table->string('name', 100);"},
		{"char length", field.Char("code").Length("3").Descriptor(), "$table->char('code', 3);"},
		{"decimal precision and scale", field.Decimal("price").Length("8,2").Descriptor(), "$table->decimal('price', 8, 2);"},
		{"decimal default scale", field.Decimal("price").Length("8").Descriptor(), "$table->decimal('price', 8, 2);"},
		{"decimal empty scale", field.Decimal("price").Length("10,").Descriptor(), "$table->decimal('price', 10, 2);"},
		{"length ignored for unsized", field.Integer("age").Length("11").Descriptor(), "$table->integer('age');"},
		{
			"modifier order",
			field.String("slug").Default("'draft'").Index().Unique().Nullable().Descriptor(),
			"$table->string('slug')->nullable()->unique()->index()->default('draft');",
		},
		{"raw default", field.Boolean("active").Default("true").Descriptor(), "$table->boolean('active')->default(true);"},
		{"unknown type", field.New("point", "geometry").Length("4").Descriptor(), "$table->geometry('point');"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Column(tt.field))
		})
	}
}

func TestForeignKeys(t *testing.T) {
	m := &schema.Model{
		Name: "Comment",
		Relationships: []*edge.Descriptor{
			edge.BelongsTo("Post").Descriptor(),
			edge.BelongsToMany("Tag").Descriptor(),
			edge.BelongsTo("Category").Descriptor(),
		},
	}
	assert.Equal(t, []string{
		"$table->foreignId('post_id')->constrained('posts')->onDelete('cascade');",
		"$table->foreignId('category_id')->constrained('categorys')->onDelete('cascade');",
	}, ForeignKeys(m))
	assert.Empty(t, ForeignKeys(&schema.Model{Name: "Tag"}))
}
