// Package edge provides the relationship kinds and fluent builders for model
// relationships.
//
// A relationship is declared on the model that owns the accessor and names
// the related model by its name:
//
//	// Post belongs to User: posts.user_id -> users.id
//	edge.BelongsTo("User")
//
//	// User has many Posts, keyed by a custom column
//	edge.HasMany("Post").ForeignKey("author_id")
//
//	// User belongs to many Roles through the role_user pivot table
//	edge.BelongsToMany("Role")
//
// # Relationship Kinds
//
// All eleven Eloquent kinds can be declared:
//
//	hasOne, hasMany, belongsTo, belongsToMany,
//	hasManyThrough, hasOneThrough,
//	morphOne, morphMany, morphTo, morphToMany, morphedByMany
//
// Code generation covers hasOne, hasMany, belongsTo and belongsToMany. The
// through and polymorphic kinds are kept in the schema and take part in
// validation, but produce no accessor code.
//
// # Conventions
//
// Options left empty fall back to framework conventions. For belongsTo the
// foreign key defaults to "<related>_id"; for belongsToMany the pivot table
// defaults to both model names lowercased, sorted and joined by "_":
//
//	edge.BelongsToMany("Role")                       // role_user
//	edge.BelongsToMany("Role").PivotTable("grants")  // grants
package edge
