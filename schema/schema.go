package schema

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/syssam/blueprint"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

// DefaultProjectID is the id of the project every new store starts with.
const DefaultProjectID = "default"

type (
	// Model is one ORM model bound to one table.
	Model struct {
		ID string `json:"id" yaml:"id" msgpack:"id"`
		// Name is the PascalCase class name of the model.
		Name string `json:"name" yaml:"name" msgpack:"name"`
		// TableName overrides the conventional table name when set.
		TableName     string              `json:"tableName,omitempty" yaml:"tableName,omitempty" msgpack:"tableName,omitempty"`
		Timestamps    bool                `json:"timestamps" yaml:"timestamps" msgpack:"timestamps"`
		SoftDeletes   bool                `json:"softDeletes" yaml:"softDeletes" msgpack:"softDeletes"`
		Fields        []*field.Descriptor `json:"fields" yaml:"fields" msgpack:"fields"`
		Relationships []*edge.Descriptor  `json:"relationships" yaml:"relationships" msgpack:"relationships"`
	}

	// Project groups models by id.
	Project struct {
		ID          string    `json:"id" yaml:"id" msgpack:"id"`
		Name        string    `json:"name" yaml:"name" msgpack:"name"`
		Description string    `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
		CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" msgpack:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt" msgpack:"updatedAt"`
		Models      []string  `json:"models" yaml:"models" msgpack:"models"`
	}

	// Document is the persisted form of a schema store.
	Document struct {
		Models        []*Model   `json:"models" yaml:"models" msgpack:"models"`
		Projects      []*Project `json:"projects" yaml:"projects" msgpack:"projects"`
		ActiveProject string     `json:"activeProject,omitempty" yaml:"activeProject,omitempty" msgpack:"activeProject,omitempty"`
	}

	// Relation is a relationship together with the model that declares it.
	Relation struct {
		Owner *Model
		Edge  *edge.Descriptor
	}
)

// Validate checks the invariants of the model: a non-empty name and unique
// field and relationship ids. Empty ids are not compared.
func (m *Model) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, blueprint.NewValidationError(m.ID, errors.New("model name must not be empty")))
	}
	seen := make(map[string]struct{}, len(m.Fields))
	for _, f := range m.Fields {
		if f.ID == "" {
			continue
		}
		if _, ok := seen[f.ID]; ok {
			errs = append(errs, blueprint.NewValidationError(m.Name, fmt.Errorf("duplicate field id %q", f.ID)))
		}
		seen[f.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(m.Relationships))
	for _, r := range m.Relationships {
		if r.ID == "" {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			errs = append(errs, blueprint.NewValidationError(m.Name, fmt.Errorf("duplicate relationship id %q", r.ID)))
		}
		seen[r.ID] = struct{}{}
	}
	return blueprint.NewAggregateError(errs...)
}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *field.Descriptor {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	c := *m
	if m.Fields != nil {
		c.Fields = make([]*field.Descriptor, len(m.Fields))
		for i, f := range m.Fields {
			c.Fields[i] = f.Clone()
		}
	}
	if m.Relationships != nil {
		c.Relationships = make([]*edge.Descriptor, len(m.Relationships))
		for i, r := range m.Relationships {
			c.Relationships[i] = r.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Models = slices.Clone(p.Models)
	return &c
}

// Validate validates every model and checks that model ids, model names
// and project ids are unique across the document.
func (d *Document) Validate() error {
	var errs []error
	ids := make(map[string]struct{}, len(d.Models))
	names := make(map[string]struct{}, len(d.Models))
	for _, m := range d.Models {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
		if m.Name != "" {
			if _, ok := names[m.Name]; ok {
				errs = append(errs, blueprint.NewValidationError(m.Name, fmt.Errorf("duplicate model name %q", m.Name)))
			}
			names[m.Name] = struct{}{}
		}
		if m.ID == "" {
			continue
		}
		if _, ok := ids[m.ID]; ok {
			errs = append(errs, blueprint.NewValidationError(m.Name, fmt.Errorf("duplicate model id %q", m.ID)))
		}
		ids[m.ID] = struct{}{}
	}
	ids = make(map[string]struct{}, len(d.Projects))
	for _, p := range d.Projects {
		if _, ok := ids[p.ID]; ok {
			errs = append(errs, blueprint.NewValidationError(p.Name, fmt.Errorf("duplicate project id %q", p.ID)))
		}
		ids[p.ID] = struct{}{}
	}
	return blueprint.NewAggregateError(errs...)
}

// Model returns the first model with the given name, or nil.
func (d *Document) Model(name string) *Model {
	for _, m := range d.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Project returns the project with the given id, or nil.
func (d *Document) Project(id string) *Project {
	for _, p := range d.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ProjectModels returns the models that belong to the given project, in
// document order. All models are returned when id is empty or names no
// project.
func (d *Document) ProjectModels(id string) []*Model {
	p := d.Project(id)
	if p == nil {
		return d.Models
	}
	models := make([]*Model, 0, len(p.Models))
	for _, m := range d.Models {
		if slices.Contains(p.Models, m.ID) {
			models = append(models, m)
		}
	}
	return models
}

// UnresolvedRelations returns the relationships whose related model is not
// declared in the document.
func (d *Document) UnresolvedRelations() []Relation {
	return Unresolved(d.Models)
}

// Unresolved returns the relationships of models whose related model is not
// one of models.
func Unresolved(models []*Model) []Relation {
	names := make(map[string]struct{}, len(models))
	for _, m := range models {
		names[m.Name] = struct{}{}
	}
	var rels []Relation
	for _, m := range models {
		for _, r := range m.Relationships {
			if _, ok := names[r.RelatedModel]; !ok {
				rels = append(rels, Relation{Owner: m, Edge: r})
			}
		}
	}
	return rels
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{ActiveProject: d.ActiveProject}
	if d.Models != nil {
		c.Models = make([]*Model, len(d.Models))
		for i, m := range d.Models {
			c.Models[i] = m.Clone()
		}
	}
	if d.Projects != nil {
		c.Projects = make([]*Project, len(d.Projects))
		for i, p := range d.Projects {
			c.Projects[i] = p.Clone()
		}
	}
	return c
}
