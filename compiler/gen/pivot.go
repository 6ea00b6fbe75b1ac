package gen

import (
	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
)

// PivotDescriptor is a join table derived from belongsToMany relationships.
// It is computed on demand and never persisted.
type PivotDescriptor struct {
	// Models holds the two model names in the order they were first seen.
	Models [2]string
	// PivotTable is the explicit table of the first declaration, or the
	// conventional one.
	PivotTable string
}

// DiscoverPivots returns one descriptor per unordered pair of models joined
// by a belongsToMany relationship. Relationships are scanned in model order,
// then in declaration order, and the first declaration of a pair wins.
func DiscoverPivots(models []*schema.Model) []PivotDescriptor {
	var (
		pivots []PivotDescriptor
		seen   = make(map[[2]string]struct{})
	)
	for _, m := range models {
		for _, rel := range m.Relationships {
			if rel.Kind != edge.KindBelongsToMany {
				continue
			}
			names := sortedLower(m.Name, rel.RelatedModel)
			key := [2]string{names[0], names[1]}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			table := rel.PivotTable
			if table == "" {
				table = DefaultPivotTable(m.Name, rel.RelatedModel)
			}
			pivots = append(pivots, PivotDescriptor{
				Models:     [2]string{m.Name, rel.RelatedModel},
				PivotTable: table,
			})
		}
	}
	return pivots
}

// PivotMigration returns the create-table migration of the pivot. Both
// foreign keys follow the lowercased model names in ascending order, and a
// composite unique index spans them.
func PivotMigration(p PivotDescriptor) (string, error) {
	if p.PivotTable == "" || p.Models[0] == "" || p.Models[1] == "" {
		return "", NewSchemaError("", p.PivotTable, "invalid pivot descriptor", nil)
	}
	names := sortedLower(p.Models[0], p.Models[1])
	a, b := names[0]+"_id", names[1]+"_id"
	cols := []string{
		"$table->id();",
		"$table->foreignId('" + a + "')->constrained()->onDelete('cascade');",
		"$table->foreignId('" + b + "')->constrained()->onDelete('cascade');",
		"$table->timestamps();",
		"$table->unique(['" + a + "', '" + b + "']);",
	}
	return execute("migration.tmpl", migrationData{Table: p.PivotTable, Columns: cols})
}
