// Package gen provides code generation for blueprint schemas.
//
// This package turns schema models into Laravel source text: create-table
// migrations, Eloquent model classes and pivot-table migrations for
// many-to-many relationships.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	schema.Model (fields + relationships)
//	        ↓
//	   naming conventions (TableName, DefaultForeignKey, ...)
//	        ↓
//	   column lines and relationship accessors
//	        ↓
//	   embedded templates (template/*.tmpl)
//	        ↓
//	   source text / Writer bundle (directory or zip)
//
// # Key Functions
//
//   - TableMigration: create-table migration of a model
//   - ModelCode: Eloquent model class of a model
//   - DiscoverPivots: join tables implied by belongsToMany relationships
//   - PivotMigration: create-table migration of a join table
//   - Snapshot: Go source rebuilding the models with the schema builders
//
// All of them are pure and deterministic. Pluralization is the literal "s"
// suffix, so a model named Category lives in the table "categorys".
//
// # Error Handling
//
// The package uses structured error types for better error handling:
//
//   - SchemaError: input the emitters cannot handle (empty model name)
//   - ConfigError: invalid options
//   - GenerationError: template or file write failures
//
// Example error handling:
//
//	code, err := gen.TableMigration(m)
//	if gen.IsSchemaError(err) {
//	    // fix the model
//	}
//
// # Bundles
//
// A Writer generates all files of a model list in parallel and writes them
// with the Laravel layout:
//
//	cfg, err := gen.NewConfig(gen.WithTarget("out"), gen.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	err = gen.NewWriter(cfg).WriteDir(ctx, models)
package gen
