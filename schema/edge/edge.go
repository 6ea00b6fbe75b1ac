package edge

import "slices"

// Kind is the relationship kind between two models. The value is the name
// of the Eloquent method that declares the relationship.
type Kind string

// Relationship kinds.
const (
	KindHasOne         Kind = "hasOne"
	KindHasMany        Kind = "hasMany"
	KindBelongsTo      Kind = "belongsTo"
	KindBelongsToMany  Kind = "belongsToMany"
	KindHasManyThrough Kind = "hasManyThrough"
	KindHasOneThrough  Kind = "hasOneThrough"
	KindMorphOne       Kind = "morphOne"
	KindMorphMany      Kind = "morphMany"
	KindMorphTo        Kind = "morphTo"
	KindMorphToMany    Kind = "morphToMany"
	KindMorphedByMany  Kind = "morphedByMany"
)

var kinds = []Kind{
	KindHasOne,
	KindHasMany,
	KindBelongsTo,
	KindBelongsToMany,
	KindHasManyThrough,
	KindHasOneThrough,
	KindMorphOne,
	KindMorphMany,
	KindMorphTo,
	KindMorphToMany,
	KindMorphedByMany,
}

var descriptions = map[Kind]string{
	KindHasOne:         "A one-to-one relationship. E.g., a User has one Profile.",
	KindHasMany:        "A one-to-many relationship. E.g., a User has many Posts.",
	KindBelongsTo:      "The inverse of hasOne or hasMany. E.g., a Post belongs to a User.",
	KindBelongsToMany:  "A many-to-many relationship. E.g., a User belongs to many Roles.",
	KindHasManyThrough: "A relationship through an intermediate model. E.g., a Country has many Posts through Users.",
	KindHasOneThrough:  "Similar to hasManyThrough, but for a single related model.",
	KindMorphOne:       "A polymorphic one-to-one relationship.",
	KindMorphMany:      "A polymorphic one-to-many relationship.",
	KindMorphTo:        "The inverse of morphOne or morphMany.",
	KindMorphToMany:    "A polymorphic many-to-many relationship.",
	KindMorphedByMany:  "The inverse of morphToMany.",
}

// Kinds returns all relationship kinds in their canonical order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// Valid reports if k is a known relationship kind.
func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

// Describe returns a short human description of the kind,
// or an empty string for unknown kinds.
func (k Kind) Describe() string {
	return descriptions[k]
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Descriptor holds the attributes of a model relationship. RelatedModel is a
// weak reference: the name of another model, resolved by the caller.
type Descriptor struct {
	ID           string `json:"id" yaml:"id" msgpack:"id"`
	Kind         Kind   `json:"type" yaml:"type" msgpack:"type"`
	RelatedModel string `json:"relatedModel" yaml:"relatedModel" msgpack:"relatedModel"`
	ForeignKey   string `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty" msgpack:"foreignKey,omitempty"`
	LocalKey     string `json:"localKey,omitempty" yaml:"localKey,omitempty" msgpack:"localKey,omitempty"`
	PivotTable   string `json:"pivotTable,omitempty" yaml:"pivotTable,omitempty" msgpack:"pivotTable,omitempty"`
	MorphType    string `json:"morphType,omitempty" yaml:"morphType,omitempty" msgpack:"morphType,omitempty"`
	MorphID      string `json:"morphId,omitempty" yaml:"morphId,omitempty" msgpack:"morphId,omitempty"`
	ThroughModel string `json:"throughModel,omitempty" yaml:"throughModel,omitempty" msgpack:"throughModel,omitempty"`
}

// Clone returns a copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Builder is the fluent builder of a relationship descriptor.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a relationship of the given kind.
func New(k Kind, related string) *Builder {
	return &Builder{desc: &Descriptor{Kind: k, RelatedModel: related}}
}

// HasOne declares a one-to-one relationship.
func HasOne(related string) *Builder { return New(KindHasOne, related) }

// HasMany declares a one-to-many relationship.
func HasMany(related string) *Builder { return New(KindHasMany, related) }

// BelongsTo declares the inverse of a one-to-one or one-to-many relationship.
func BelongsTo(related string) *Builder { return New(KindBelongsTo, related) }

// BelongsToMany declares a many-to-many relationship.
func BelongsToMany(related string) *Builder { return New(KindBelongsToMany, related) }

// HasManyThrough declares a has-many relationship through an intermediate model.
func HasManyThrough(related, through string) *Builder {
	return New(KindHasManyThrough, related).Through(through)
}

// HasOneThrough declares a has-one relationship through an intermediate model.
func HasOneThrough(related, through string) *Builder {
	return New(KindHasOneThrough, related).Through(through)
}

// MorphOne declares a polymorphic one-to-one relationship.
func MorphOne(related string) *Builder { return New(KindMorphOne, related) }

// MorphMany declares a polymorphic one-to-many relationship.
func MorphMany(related string) *Builder { return New(KindMorphMany, related) }

// MorphTo declares the inverse of a polymorphic relationship.
func MorphTo(related string) *Builder { return New(KindMorphTo, related) }

// MorphToMany declares a polymorphic many-to-many relationship.
func MorphToMany(related string) *Builder { return New(KindMorphToMany, related) }

// MorphedByMany declares the inverse of a polymorphic many-to-many relationship.
func MorphedByMany(related string) *Builder { return New(KindMorphedByMany, related) }

// ID sets the identifier of the relationship within its model.
func (b *Builder) ID(id string) *Builder {
	b.desc.ID = id
	return b
}

// ForeignKey overrides the conventional foreign-key column.
func (b *Builder) ForeignKey(fk string) *Builder {
	b.desc.ForeignKey = fk
	return b
}

// LocalKey overrides the conventional local-key column.
func (b *Builder) LocalKey(lk string) *Builder {
	b.desc.LocalKey = lk
	return b
}

// PivotTable overrides the conventional pivot table of a many-to-many relationship.
func (b *Builder) PivotTable(table string) *Builder {
	b.desc.PivotTable = table
	return b
}

// Morph sets the type and id columns of a polymorphic relationship.
func (b *Builder) Morph(typeColumn, idColumn string) *Builder {
	b.desc.MorphType = typeColumn
	b.desc.MorphID = idColumn
	return b
}

// Through sets the intermediate model of a through relationship.
func (b *Builder) Through(model string) *Builder {
	b.desc.ThroughModel = model
	return b
}

// Descriptor returns the built descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
