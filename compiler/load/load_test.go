package load

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint"
	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

const persisted = `{
  "state": {
    "models": [
      {
        "id": "1700000000000",
        "name": "User",
        "timestamps": true,
        "softDeletes": false,
        "fields": [
          {"id": "f1", "name": "name", "type": "string", "length": 255, "nullable": false, "unique": false, "index": false},
          {"id": "f2", "name": "balance", "type": "decimal", "length": "8,2", "default": 0}
        ],
        "relationships": [
          {"id": "r1", "type": "belongsToMany", "relatedModel": "Role", "pivotTable": "role_user"}
        ]
      }
    ],
    "projects": [
      {
        "id": "default",
        "name": "Default Project",
        "createdAt": "2024-01-02T03:04:05.000Z",
        "updatedAt": "2024-01-02T03:04:05.000Z",
        "models": ["1700000000000"]
      }
    ],
    "activeProject": "default"
  },
  "version": 0
}`

func TestDecode(t *testing.T) {
	t.Run("persisted wrapper", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(persisted), FormatJSON)
		require.NoError(t, err)

		require.Len(t, doc.Models, 1)
		m := doc.Models[0]
		assert.Equal(t, "1700000000000", m.ID)
		assert.Equal(t, "User", m.Name)
		assert.True(t, m.Timestamps)
		require.Len(t, m.Fields, 2)
		assert.Equal(t, "255", m.Fields[0].Length)
		assert.Equal(t, field.TypeDecimal, m.Fields[1].Type)
		assert.Equal(t, "8,2", m.Fields[1].Length)
		assert.Equal(t, "0", m.Fields[1].Default)
		require.Len(t, m.Relationships, 1)
		assert.Equal(t, edge.KindBelongsToMany, m.Relationships[0].Kind)
		assert.Equal(t, "role_user", m.Relationships[0].PivotTable)

		require.Len(t, doc.Projects, 1)
		p := doc.Projects[0]
		assert.Equal(t, "Default Project", p.Name)
		assert.Equal(t, time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC), p.CreatedAt)
		assert.Equal(t, []string{"1700000000000"}, p.Models)
		assert.Equal(t, "default", doc.ActiveProject)
	})

	t.Run("bare yaml with defaults", func(t *testing.T) {
		src := `
models:
  - id: 1
    name: Post
    fields:
      - name: title
        type: string
        length: 100
`
		doc, err := Decode(strings.NewReader(src), FormatYAML)
		require.NoError(t, err)
		require.Len(t, doc.Models, 1)
		m := doc.Models[0]
		assert.Equal(t, "1", m.ID)
		assert.True(t, m.Timestamps)
		assert.False(t, m.SoftDeletes)
		assert.Equal(t, "100", m.Fields[0].Length)
		assert.Empty(t, m.Relationships)
	})

	t.Run("explicit false timestamps", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"models":[{"name":"Tag","timestamps":false}]}`), FormatJSON)
		require.NoError(t, err)
		assert.False(t, doc.Models[0].Timestamps)
	})

	t.Run("empty input", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(""), FormatYAML)
		require.NoError(t, err)
		assert.Empty(t, doc.Models)
	})

	t.Run("validation error", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"models":[{"id":"a","name":""}]}`), FormatJSON)
		require.Error(t, err)
		assert.True(t, blueprint.IsValidationError(err))
		assert.ErrorIs(t, err, blueprint.ErrInvalid)
	})

	t.Run("duplicate model ids", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"models":[{"id":"a","name":"A"},{"id":"a","name":"B"}]}`), FormatJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate model id "a"`)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"models":`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{}`), Format("toml"))
		assert.Error(t, err)
	})
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"schema.json", FormatJSON, false},
		{"schema.YAML", FormatYAML, false},
		{"dir/schema.yml", FormatYAML, false},
		{"schema.msgpack", FormatMsgpack, false},
		{"schema.toml", "", true},
		{"schema", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testDocument() *schema.Document {
	ts := time.Date(2024, time.May, 6, 7, 8, 9, 0, time.UTC)
	return &schema.Document{
		Models: []*schema.Model{
			{
				ID:          "m1",
				Name:        "Post",
				TableName:   "articles",
				Timestamps:  true,
				SoftDeletes: true,
				Fields: []*field.Descriptor{
					field.String("title").ID("f1").Length("191").Unique().Descriptor(),
					field.Decimal("price").ID("f2").Length("8,2").Nullable().Default("0").Descriptor(),
				},
				Relationships: []*edge.Descriptor{
					edge.BelongsTo("User").ID("r1").ForeignKey("author_id").Descriptor(),
				},
			},
		},
		Projects: []*schema.Project{
			{ID: schema.DefaultProjectID, Name: "Default Project", CreatedAt: ts, UpdatedAt: ts, Models: []string{"m1"}},
		},
		ActiveProject: schema.DefaultProjectID,
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".msgpack"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "schema"+ext)
			want := testDocument()

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("rejects invalid document", func(t *testing.T) {
		doc := &schema.Document{Models: []*schema.Model{{ID: "x"}}}
		err := Encode(&bytes.Buffer{}, FormatJSON, doc)
		assert.True(t, blueprint.IsValidationError(err))
	})

	t.Run("json is a bare document", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, testDocument()))
		assert.NotContains(t, buf.String(), `"state"`)
		assert.Contains(t, buf.String(), `"relatedModel": "User"`)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load("schema.txt")
		assert.Error(t, err)
	})
}

func TestLoadTestdata(t *testing.T) {
	t.Run("persisted store", func(t *testing.T) {
		doc, err := Load(filepath.Join("testdata", "store.json"))
		require.NoError(t, err)
		require.Len(t, doc.Models, 3)
		post := doc.Model("Post")
		require.NotNil(t, post)
		assert.True(t, post.SoftDeletes)
		assert.Equal(t, "8,2", post.Field("price").Length)
		assert.Equal(t, "0", post.Field("price").Default)
		assert.False(t, doc.Model("Role").Timestamps)
		assert.Empty(t, doc.UnresolvedRelations())
		assert.Len(t, doc.ProjectModels(doc.ActiveProject), 3)
	})

	t.Run("hand written yaml", func(t *testing.T) {
		doc, err := Load(filepath.Join("testdata", "blog.yaml"))
		require.NoError(t, err)
		post := doc.Model("Post")
		require.NotNil(t, post)
		assert.Equal(t, "articles", post.TableName)
		assert.True(t, post.Timestamps)
		assert.Equal(t, "191", post.Field("title").Length)
		assert.Equal(t, "author_id", post.Relationships[0].ForeignKey)
		assert.Empty(t, doc.Projects)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "duplicate.json"))
		assert.True(t, blueprint.IsValidationError(err))
	})
}
