package gen

import (
	"bytes"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

const (
	schemaPkg = "github.com/syssam/blueprint/schema"
	fieldPkg  = "github.com/syssam/blueprint/schema/field"
	edgePkg   = "github.com/syssam/blueprint/schema/edge"
)

// Snapshot returns Go source of package pkg declaring the models as
// a Models variable built with the field and edge builders.
func Snapshot(pkg string, models []*schema.Model) ([]byte, error) {
	if pkg == "" {
		return nil, NewConfigError("Package", nil, "package cannot be empty")
	}
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by blueprint, DO NOT EDIT.")
	f.ImportName(schemaPkg, "schema")
	f.ImportName(fieldPkg, "field")
	f.ImportName(edgePkg, "edge")

	f.Comment("Models holds the schema models in declaration order.")
	f.Var().Id("Models").Op("=").Index().Op("*").Qual(schemaPkg, "Model").ValuesFunc(func(g *jen.Group) {
		for _, m := range models {
			g.Line().Values(modelDict(m))
		}
		if len(models) > 0 {
			g.Line()
		}
	})

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("snapshot", "", "render Go source", err)
	}
	return buf.Bytes(), nil
}

// modelDict returns the non-zero fields of m as a composite literal.
func modelDict(m *schema.Model) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):        jen.Lit(m.Name),
		jen.Id("Timestamps"):  jen.Lit(m.Timestamps),
		jen.Id("SoftDeletes"): jen.Lit(m.SoftDeletes),
	}
	if m.ID != "" {
		d[jen.Id("ID")] = jen.Lit(m.ID)
	}
	if m.TableName != "" {
		d[jen.Id("TableName")] = jen.Lit(m.TableName)
	}
	if len(m.Fields) > 0 {
		d[jen.Id("Fields")] = jen.Index().Op("*").Qual(fieldPkg, "Descriptor").ValuesFunc(func(g *jen.Group) {
			for _, fd := range m.Fields {
				g.Line().Add(fieldChain(fd))
			}
			g.Line()
		})
	}
	if len(m.Relationships) > 0 {
		d[jen.Id("Relationships")] = jen.Index().Op("*").Qual(edgePkg, "Descriptor").ValuesFunc(func(g *jen.Group) {
			for _, rel := range m.Relationships {
				g.Line().Add(edgeChain(rel))
			}
			g.Line()
		})
	}
	return d
}

// fieldChain renders a field builder chain ending in Descriptor().
func fieldChain(fd *field.Descriptor) *jen.Statement {
	s := jen.Qual(fieldPkg, "New").Call(jen.Lit(fd.Name), jen.Qual(fieldPkg, "Type").Call(jen.Lit(string(fd.Type))))
	if fd.ID != "" {
		s.Dot("ID").Call(jen.Lit(fd.ID))
	}
	if fd.Length != "" {
		s.Dot("Length").Call(jen.Lit(fd.Length))
	}
	if fd.Nullable {
		s.Dot("Nullable").Call()
	}
	if fd.Unique {
		s.Dot("Unique").Call()
	}
	if fd.Index {
		s.Dot("Index").Call()
	}
	if fd.Default != "" {
		s.Dot("Default").Call(jen.Lit(fd.Default))
	}
	return s.Dot("Descriptor").Call()
}

// edgeChain renders a relationship builder chain ending in Descriptor().
func edgeChain(rel *edge.Descriptor) *jen.Statement {
	s := jen.Qual(edgePkg, "New").Call(jen.Qual(edgePkg, "Kind").Call(jen.Lit(string(rel.Kind))), jen.Lit(rel.RelatedModel))
	if rel.ID != "" {
		s.Dot("ID").Call(jen.Lit(rel.ID))
	}
	if rel.ForeignKey != "" {
		s.Dot("ForeignKey").Call(jen.Lit(rel.ForeignKey))
	}
	if rel.LocalKey != "" {
		s.Dot("LocalKey").Call(jen.Lit(rel.LocalKey))
	}
	if rel.PivotTable != "" {
		s.Dot("PivotTable").Call(jen.Lit(rel.PivotTable))
	}
	if rel.MorphType != "" || rel.MorphID != "" {
		s.Dot("Morph").Call(jen.Lit(rel.MorphType), jen.Lit(rel.MorphID))
	}
	if rel.ThroughModel != "" {
		s.Dot("Through").Call(jen.Lit(rel.ThroughModel))
	}
	return s.Dot("Descriptor").Call()
}
