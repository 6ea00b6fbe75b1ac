package gen

import (
	"strings"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

// defaultScale is the decimal scale used when the length carries no scale.
const defaultScale = "2"

// migrationData is the input of the migration template.
type migrationData struct {
	Table   string
	Columns []string
}

// TableMigration returns the create-table migration of the model. Columns
// are emitted in the order: id, declared fields, belongsTo foreign keys,
// timestamps, soft deletes.
func TableMigration(m *schema.Model) (string, error) {
	if err := checkModel(m); err != nil {
		return "", err
	}
	cols := make([]string, 0, len(m.Fields)+len(m.Relationships)+3)
	cols = append(cols, "$table->id();")
	for _, f := range m.Fields {
		cols = append(cols, Column(f))
	}
	cols = append(cols, ForeignKeys(m)...)
	if m.Timestamps {
		cols = append(cols, "$table->timestamps();")
	}
	if m.SoftDeletes {
		cols = append(cols, "$table->softDeletes();")
	}
	return execute("migration.tmpl", migrationData{Table: TableName(m), Columns: cols})
}

// Column returns the column definition of a field. Modifiers follow the
// base call in the fixed order nullable, unique, index, default.
func Column(f *field.Descriptor) string {
	var b strings.Builder
	b.WriteString("$table->")
	b.WriteString(string(f.Type))
	b.WriteString("('")
	b.WriteString(f.Name)
	b.WriteString("'")
	b.WriteString(lengthArgs(f))
	b.WriteString(")")
	if f.Nullable {
		b.WriteString("->nullable()")
	}
	if f.Unique {
		b.WriteString("->unique()")
	}
	if f.Index {
		b.WriteString("->index()")
	}
	if f.Default != "" {
		b.WriteString("->default(")
		b.WriteString(f.Default)
		b.WriteString(")")
	}
	b.WriteString(";")
	return b.String()
}

// lengthArgs returns the size arguments of a sized column. A decimal length
// is split on "," into precision and scale. Neither part is validated.
func lengthArgs(f *field.Descriptor) string {
	if f.Length == "" || !f.Type.Sized() {
		return ""
	}
	if f.Type != field.TypeDecimal {
		return ", " + f.Length
	}
	parts := strings.Split(f.Length, ",")
	precision, scale := parts[0], defaultScale
	if len(parts) > 1 && parts[1] != "" {
		scale = parts[1]
	}
	return ", " + precision + ", " + scale
}

// ForeignKeys returns one foreign-key column per belongsTo relationship of
// the model, in declaration order. The referenced table is the conventional
// table of the related model name.
func ForeignKeys(m *schema.Model) []string {
	var cols []string
	for _, rel := range m.Relationships {
		if rel.Kind != edge.KindBelongsTo {
			continue
		}
		fk := rel.ForeignKey
		if fk == "" {
			fk = DefaultForeignKey(rel.RelatedModel)
		}
		cols = append(cols, "$table->foreignId('"+fk+"')->constrained('"+plural(lower(rel.RelatedModel))+"')->onDelete('cascade');")
	}
	return cols
}

// checkModel enforces the one precondition of the emitters.
func checkModel(m *schema.Model) error {
	if m == nil || m.Name == "" {
		return NewSchemaError("", "", "model name must not be empty", nil)
	}
	return nil
}
