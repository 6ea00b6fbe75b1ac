// Package field provides the column types and fluent builders for model fields.
//
// A field is one column of the generated create-table migration and one entry
// of the model's mass-assignment list:
//
//	field.String("email").Length("255").Unique()   // $table->string('email', 255)->unique();
//	field.Decimal("price").Length("8,2")           // $table->decimal('price', 8, 2);
//	field.Boolean("active").Default("true")        // $table->boolean('active')->default(true);
//
// # Field Types
//
// Type values are the names of the migration builder methods (string, text,
// bigInteger, dateTime, ...). Only string, char and decimal accept a length;
// for decimal the length encodes "precision,scale".
//
// Types outside the supported set are carried through untouched: the
// generator emits a bare column call for them.
//
// # Modifiers
//
// Nullable, Unique, Index and Default are emitted in that fixed order no
// matter the order they were set in:
//
//	field.String("slug").Index().Nullable()   // ->nullable()->index()
package field
