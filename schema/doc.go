// Package schema provides the data model the generator consumes.
//
// A Model names one ORM class and its table. Fields and relationships are
// built with the [field] and [edge] subpackages:
//
//	post := &schema.Model{
//	    Name:       "Post",
//	    Timestamps: true,
//	    Fields: []*field.Descriptor{
//	        field.String("title").Length("255").Descriptor(),
//	        field.Text("body").Nullable().Descriptor(),
//	    },
//	    Relationships: []*edge.Descriptor{
//	        edge.BelongsTo("User").Descriptor(),
//	    },
//	}
//
// A Document is the persisted shape of a whole design: the models, the
// projects grouping them and the active project. Documents are read and
// written by the compiler/load package and owned at runtime by the store
// package.
//
// Values in this package are plain data. The generator never mutates them.
package schema
