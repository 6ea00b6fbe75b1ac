package load

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

// File is the decoded shape of a schema document file. It accepts both the
// bare document and the persisted store wrapper {"state": {...}, "version": N}.
type File struct {
	Document `yaml:",inline" msgpack:",inline"`
	State    *Document `json:"state,omitempty" yaml:"state,omitempty" msgpack:"state,omitempty"`
	Version  int       `json:"version,omitempty" yaml:"version,omitempty" msgpack:"version,omitempty"`
}

// Document is a loosely typed schema document as written by hand or by
// other tools.
type Document struct {
	Models        []*Model   `json:"models,omitempty" yaml:"models,omitempty" msgpack:"models,omitempty"`
	Projects      []*Project `json:"projects,omitempty" yaml:"projects,omitempty" msgpack:"projects,omitempty"`
	ActiveProject string     `json:"activeProject,omitempty" yaml:"activeProject,omitempty" msgpack:"activeProject,omitempty"`
}

// Model represents a schema.Model that was loaded from a document.
// Missing booleans take the defaults of a new model form.
type Model struct {
	ID            any      `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	TableName     string   `json:"tableName,omitempty" yaml:"tableName,omitempty" msgpack:"tableName,omitempty"`
	Timestamps    *bool    `json:"timestamps,omitempty" yaml:"timestamps,omitempty" msgpack:"timestamps,omitempty"`
	SoftDeletes   *bool    `json:"softDeletes,omitempty" yaml:"softDeletes,omitempty" msgpack:"softDeletes,omitempty"`
	Fields        []*Field `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Relationships []*Edge  `json:"relationships,omitempty" yaml:"relationships,omitempty" msgpack:"relationships,omitempty"`
}

// Field represents a field.Descriptor that was loaded from a document.
// Length and Default may be numbers or strings.
type Field struct {
	ID       any    `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Length   any    `json:"length,omitempty" yaml:"length,omitempty" msgpack:"length,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" msgpack:"nullable,omitempty"`
	Unique   bool   `json:"unique,omitempty" yaml:"unique,omitempty" msgpack:"unique,omitempty"`
	Index    bool   `json:"index,omitempty" yaml:"index,omitempty" msgpack:"index,omitempty"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// Edge represents an edge.Descriptor that was loaded from a document.
type Edge struct {
	ID           any    `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	RelatedModel string `json:"relatedModel,omitempty" yaml:"relatedModel,omitempty" msgpack:"relatedModel,omitempty"`
	ForeignKey   string `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty" msgpack:"foreignKey,omitempty"`
	LocalKey     string `json:"localKey,omitempty" yaml:"localKey,omitempty" msgpack:"localKey,omitempty"`
	PivotTable   string `json:"pivotTable,omitempty" yaml:"pivotTable,omitempty" msgpack:"pivotTable,omitempty"`
	MorphType    string `json:"morphType,omitempty" yaml:"morphType,omitempty" msgpack:"morphType,omitempty"`
	MorphID      string `json:"morphId,omitempty" yaml:"morphId,omitempty" msgpack:"morphId,omitempty"`
	ThroughModel string `json:"throughModel,omitempty" yaml:"throughModel,omitempty" msgpack:"throughModel,omitempty"`
}

// Project represents a schema.Project that was loaded from a document.
// Timestamps may be RFC 3339 strings or native time values.
type Project struct {
	ID          any    `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	CreatedAt   any    `json:"createdAt,omitempty" yaml:"createdAt,omitempty" msgpack:"createdAt,omitempty"`
	UpdatedAt   any    `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty" msgpack:"updatedAt,omitempty"`
	Models      []any  `json:"models,omitempty" yaml:"models,omitempty" msgpack:"models,omitempty"`
}

// Schema returns the typed document. The persisted wrapper wins over
// top-level keys when both are present.
func (f *File) Schema() (*schema.Document, error) {
	src := &f.Document
	if f.State != nil {
		src = f.State
	}
	return src.Schema()
}

// Schema converts the loaded document into a schema.Document.
func (d *Document) Schema() (*schema.Document, error) {
	doc := &schema.Document{ActiveProject: d.ActiveProject}
	for i, lm := range d.Models {
		if lm == nil {
			continue
		}
		m, err := lm.Schema()
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		doc.Models = append(doc.Models, m)
	}
	for i, lp := range d.Projects {
		if lp == nil {
			continue
		}
		p, err := lp.Schema()
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		doc.Projects = append(doc.Projects, p)
	}
	return doc, nil
}

// Schema converts the loaded model into a schema.Model.
func (m *Model) Schema() (*schema.Model, error) {
	id, err := cast.ToStringE(m.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	sm := &schema.Model{
		ID:            id,
		Name:          m.Name,
		TableName:     m.TableName,
		Timestamps:    true,
		Fields:        make([]*field.Descriptor, 0, len(m.Fields)),
		Relationships: make([]*edge.Descriptor, 0, len(m.Relationships)),
	}
	if m.Timestamps != nil {
		sm.Timestamps = *m.Timestamps
	}
	if m.SoftDeletes != nil {
		sm.SoftDeletes = *m.SoftDeletes
	}
	for _, lf := range m.Fields {
		if lf == nil {
			continue
		}
		fd, err := NewField(lf)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", lf.Name, err)
		}
		sm.Fields = append(sm.Fields, fd)
	}
	for _, le := range m.Relationships {
		if le == nil {
			continue
		}
		ed, err := NewEdge(le)
		if err != nil {
			return nil, fmt.Errorf("relationship %q: %w", le.RelatedModel, err)
		}
		sm.Relationships = append(sm.Relationships, ed)
	}
	return sm, nil
}

// NewField creates a field descriptor from a loaded field.
// It returns an error if an attribute cannot be coerced to a string.
func NewField(lf *Field) (*field.Descriptor, error) {
	id, err := cast.ToStringE(lf.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	length, err := cast.ToStringE(lf.Length)
	if err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}
	def, err := cast.ToStringE(lf.Default)
	if err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	return &field.Descriptor{
		ID:       id,
		Name:     lf.Name,
		Type:     field.Type(lf.Type),
		Length:   length,
		Nullable: lf.Nullable,
		Unique:   lf.Unique,
		Index:    lf.Index,
		Default:  def,
	}, nil
}

// NewEdge creates a relationship descriptor from a loaded edge.
func NewEdge(le *Edge) (*edge.Descriptor, error) {
	id, err := cast.ToStringE(le.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	return &edge.Descriptor{
		ID:           id,
		Kind:         edge.Kind(le.Type),
		RelatedModel: le.RelatedModel,
		ForeignKey:   le.ForeignKey,
		LocalKey:     le.LocalKey,
		PivotTable:   le.PivotTable,
		MorphType:    le.MorphType,
		MorphID:      le.MorphID,
		ThroughModel: le.ThroughModel,
	}, nil
}

// Schema converts the loaded project into a schema.Project.
func (p *Project) Schema() (*schema.Project, error) {
	id, err := cast.ToStringE(p.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	created, err := toTime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := toTime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}
	models, err := cast.ToStringSliceE(p.Models)
	if err != nil {
		return nil, fmt.Errorf("models: %w", err)
	}
	return &schema.Project{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   created,
		UpdatedAt:   updated,
		Models:      models,
	}, nil
}

func toTime(v any) (time.Time, error) {
	if v == nil {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
