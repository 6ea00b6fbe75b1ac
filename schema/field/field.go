package field

import "slices"

// Type is a column type of the migration builder. The value is the name of
// the Blueprint method that creates the column.
type Type string

// Supported column types.
const (
	TypeString         Type = "string"
	TypeChar           Type = "char"
	TypeText           Type = "text"
	TypeInteger        Type = "integer"
	TypeBigInteger     Type = "bigInteger"
	TypeFloat          Type = "float"
	TypeDouble         Type = "double"
	TypeDecimal        Type = "decimal"
	TypeBoolean        Type = "boolean"
	TypeDate           Type = "date"
	TypeDateTime       Type = "dateTime"
	TypeTime           Type = "time"
	TypeTimestamp      Type = "timestamp"
	TypeJSON           Type = "json"
	TypeUUID           Type = "uuid"
	TypeBinary         Type = "binary"
	TypeEnum           Type = "enum"
	TypeForeignID      Type = "foreignId"
	TypeMorphs         Type = "morphs"
	TypeNullableMorphs Type = "nullableMorphs"
	TypeRememberToken  Type = "rememberToken"
	TypeIPAddress      Type = "ipAddress"
	TypeMACAddress     Type = "macAddress"
	TypeYear           Type = "year"
)

var types = []Type{
	TypeString,
	TypeChar,
	TypeText,
	TypeInteger,
	TypeBigInteger,
	TypeFloat,
	TypeDouble,
	TypeDecimal,
	TypeBoolean,
	TypeDate,
	TypeDateTime,
	TypeTime,
	TypeTimestamp,
	TypeJSON,
	TypeUUID,
	TypeBinary,
	TypeEnum,
	TypeForeignID,
	TypeMorphs,
	TypeNullableMorphs,
	TypeRememberToken,
	TypeIPAddress,
	TypeMACAddress,
	TypeYear,
}

// Types returns all supported column types in their canonical order.
func Types() []Type {
	return slices.Clone(types)
}

// Valid reports if the type is one of the supported column types.
func (t Type) Valid() bool {
	return slices.Contains(types, t)
}

// Sized reports if the column accepts a length (or precision,scale) argument.
func (t Type) Sized() bool {
	return t == TypeString || t == TypeChar || t == TypeDecimal
}

// String returns the type name.
func (t Type) String() string { return string(t) }

// Descriptor holds the attributes of a model field.
type Descriptor struct {
	ID       string `json:"id" yaml:"id" msgpack:"id"`
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Type     Type   `json:"type" yaml:"type" msgpack:"type"`
	Length   string `json:"length,omitempty" yaml:"length,omitempty" msgpack:"length,omitempty"`
	Nullable bool   `json:"nullable" yaml:"nullable" msgpack:"nullable"`
	Unique   bool   `json:"unique" yaml:"unique" msgpack:"unique"`
	Index    bool   `json:"index" yaml:"index" msgpack:"index"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// Clone returns a copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Builder is the fluent builder of a field descriptor.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a field of the given type.
func New(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// String returns a builder for a varchar column.
func String(name string) *Builder { return New(name, TypeString) }

// Char returns a builder for a fixed-length char column.
func Char(name string) *Builder { return New(name, TypeChar) }

// Text returns a builder for a text column.
func Text(name string) *Builder { return New(name, TypeText) }

// Integer returns a builder for an integer column.
func Integer(name string) *Builder { return New(name, TypeInteger) }

// BigInteger returns a builder for a bigint column.
func BigInteger(name string) *Builder { return New(name, TypeBigInteger) }

// Decimal returns a builder for a decimal column.
func Decimal(name string) *Builder { return New(name, TypeDecimal) }

// Boolean returns a builder for a boolean column.
func Boolean(name string) *Builder { return New(name, TypeBoolean) }

// DateTime returns a builder for a datetime column.
func DateTime(name string) *Builder { return New(name, TypeDateTime) }

// Timestamp returns a builder for a timestamp column.
func Timestamp(name string) *Builder { return New(name, TypeTimestamp) }

// JSON returns a builder for a json column.
func JSON(name string) *Builder { return New(name, TypeJSON) }

// UUID returns a builder for a uuid column.
func UUID(name string) *Builder { return New(name, TypeUUID) }

// ForeignID returns a builder for an unsigned bigint foreign-key column.
func ForeignID(name string) *Builder { return New(name, TypeForeignID) }

// ID sets the identifier of the field within its model.
func (b *Builder) ID(id string) *Builder {
	b.desc.ID = id
	return b
}

// Length sets the column length. For decimal columns the value
// is "precision,scale", for example "8,2".
func (b *Builder) Length(l string) *Builder {
	b.desc.Length = l
	return b
}

// Nullable marks the column as nullable.
func (b *Builder) Nullable() *Builder {
	b.desc.Nullable = true
	return b
}

// Unique adds a unique index on the column.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Index adds a plain index on the column.
func (b *Builder) Index() *Builder {
	b.desc.Index = true
	return b
}

// Default sets the column default. The value is emitted verbatim,
// so string literals must carry their own quotes.
func (b *Builder) Default(v string) *Builder {
	b.desc.Default = v
	return b
}

// Descriptor returns the built descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
