package gen_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/blueprint/compiler/gen"
	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

// benchModels returns n models, each with a few columns, a belongsTo edge to
// its predecessor and a belongsToMany edge to model 0.
func benchModels(n int) []*schema.Model {
	models := make([]*schema.Model, n)
	for i := range models {
		m := &schema.Model{
			Name:       fmt.Sprintf("Model%d", i),
			Timestamps: true,
			Fields: []*field.Descriptor{
				field.String("name").Length("191").Descriptor(),
				field.Decimal("price").Length("10,4").Nullable().Descriptor(),
				field.Boolean("active").Default("true").Index().Descriptor(),
			},
		}
		if i > 0 {
			m.Relationships = []*edge.Descriptor{
				edge.BelongsTo(fmt.Sprintf("Model%d", i-1)).Descriptor(),
				edge.BelongsToMany("Model0").Descriptor(),
			}
		}
		models[i] = m
	}
	return models
}

func BenchmarkWriter_Files(b *testing.B) {
	models := benchModels(100)
	w := gen.NewWriter(gen.MustNewConfig(gen.WithWorkers(4)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := w.Files(context.Background(), models)
		require.NoError(b, err)
	}
}

func BenchmarkWriter_WriteZip(b *testing.B) {
	models := benchModels(100)
	w := gen.NewWriter(nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, w.WriteZip(context.Background(), models, io.Discard))
	}
}

func BenchmarkTableMigration(b *testing.B) {
	m := benchModels(2)[1]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.TableMigration(m)
		require.NoError(b, err)
	}
}
