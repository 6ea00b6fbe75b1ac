// Package store provides an in-memory repository of schema models and
// projects, persisted as a schema document.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/blueprint"
	"github.com/syssam/blueprint/compiler/load"
	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
	"github.com/syssam/blueprint/schema/field"
)

// Default project attributes of a new store.
const (
	DefaultProjectName        = "Default Project"
	DefaultProjectDescription = "Default project for Laravel migrations"
)

var errProjectName = errors.New("project name must not be empty")

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source of project timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the generator of model, field, relationship and
// project ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithLogger sets the logger of store mutations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store owns the models and projects of a schema document. It is safe for
// concurrent use. Values returned by the store are copies.
type Store struct {
	mu     sync.RWMutex
	doc    *schema.Document
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// New returns a store holding only the default project, which is active.
func New(opts ...Option) *Store {
	s := newStore(opts...)
	ts := s.now()
	s.doc = &schema.Document{
		Projects: []*schema.Project{{
			ID:          schema.DefaultProjectID,
			Name:        DefaultProjectName,
			Description: DefaultProjectDescription,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			Models:      []string{},
		}},
		ActiveProject: schema.DefaultProjectID,
	}
	return s
}

// Open returns a store holding the document at path.
func Open(path string, opts ...Option) (*Store, error) {
	doc, err := load.Load(path)
	if err != nil {
		return nil, err
	}
	s := newStore(opts...)
	s.doc = doc
	return s, nil
}

func newStore(opts ...Option) *Store {
	s := &Store{
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes the document to path in the format of its extension.
func (s *Store) Save(path string) error {
	return load.Save(path, s.Document())
}

// Document returns a deep copy of the store document.
func (s *Store) Document() *schema.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// =============================================================================
// Models
// =============================================================================

// AddModel adds a model with a new id and no fields or relationships, and
// appends it to the active project when there is one. Only the name, table
// name, timestamps and soft-deletes attributes of m are used.
func (s *Store) AddModel(m schema.Model) (*schema.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nm := &schema.Model{
		ID:            s.newID(),
		Name:          m.Name,
		TableName:     m.TableName,
		Timestamps:    m.Timestamps,
		SoftDeletes:   m.SoftDeletes,
		Fields:        []*field.Descriptor{},
		Relationships: []*edge.Descriptor{},
	}
	if err := nm.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkName(nm); err != nil {
		return nil, err
	}
	s.doc.Models = append(s.doc.Models, nm)
	if p := s.doc.Project(s.doc.ActiveProject); p != nil {
		p.Models = append(p.Models, nm.ID)
	}
	s.logger.Debug("model added", "id", nm.ID, "name", nm.Name)
	return nm.Clone(), nil
}

// UpdateModel applies fn to a copy of the model and stores the result when
// it is valid. The id cannot be changed.
func (s *Store) UpdateModel(id string, fn func(*schema.Model)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.modelIndex(id)
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("model", id)
	}
	m := s.doc.Models[i].Clone()
	fn(m)
	m.ID = id
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.checkName(m); err != nil {
		return err
	}
	s.doc.Models[i] = m
	return nil
}

// checkName reports a ValidationError when another model already uses the
// name of m.
func (s *Store) checkName(m *schema.Model) error {
	if o := s.doc.Model(m.Name); o != nil && o.ID != m.ID {
		return blueprint.NewValidationError(m.Name, fmt.Errorf("duplicate model name %q", m.Name))
	}
	return nil
}

// DeleteModel removes the model and its id from every project.
func (s *Store) DeleteModel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.modelIndex(id)
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("model", id)
	}
	s.doc.Models = slices.Delete(s.doc.Models, i, i+1)
	for _, p := range s.doc.Projects {
		p.Models = slices.DeleteFunc(p.Models, func(mid string) bool { return mid == id })
	}
	s.logger.Debug("model deleted", "id", id)
	return nil
}

// Model returns the model with the given id.
func (s *Store) Model(id string) (*schema.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.modelIndex(id)
	if i < 0 {
		return nil, blueprint.NewNotFoundErrorWithID("model", id)
	}
	return s.doc.Models[i].Clone(), nil
}

// Models returns all models in insertion order.
func (s *Store) Models() []*schema.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneModels(s.doc.Models)
}

func (s *Store) modelIndex(id string) int {
	return slices.IndexFunc(s.doc.Models, func(m *schema.Model) bool { return m.ID == id })
}

// =============================================================================
// Fields
// =============================================================================

// AddField appends a field with a new id to the model.
func (s *Store) AddField(modelID string, f field.Descriptor) (*field.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return nil, err
	}
	f.ID = s.newID()
	m.Fields = append(m.Fields, &f)
	return f.Clone(), nil
}

// UpdateField applies fn to the field. The id cannot be changed.
func (s *Store) UpdateField(modelID, fieldID string, fn func(*field.Descriptor)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(m.Fields, func(f *field.Descriptor) bool { return f.ID == fieldID })
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("field", fieldID)
	}
	f := m.Fields[i].Clone()
	fn(f)
	f.ID = fieldID
	m.Fields[i] = f
	return nil
}

// DeleteField removes the field from the model.
func (s *Store) DeleteField(modelID, fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return err
	}
	n := len(m.Fields)
	m.Fields = slices.DeleteFunc(m.Fields, func(f *field.Descriptor) bool { return f.ID == fieldID })
	if len(m.Fields) == n {
		return blueprint.NewNotFoundErrorWithID("field", fieldID)
	}
	return nil
}

// =============================================================================
// Relationships
// =============================================================================

// AddRelationship appends a relationship with a new id to the model.
func (s *Store) AddRelationship(modelID string, r edge.Descriptor) (*edge.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return nil, err
	}
	r.ID = s.newID()
	m.Relationships = append(m.Relationships, &r)
	return r.Clone(), nil
}

// UpdateRelationship applies fn to the relationship. The id cannot be changed.
func (s *Store) UpdateRelationship(modelID, relID string, fn func(*edge.Descriptor)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(m.Relationships, func(r *edge.Descriptor) bool { return r.ID == relID })
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("relationship", relID)
	}
	r := m.Relationships[i].Clone()
	fn(r)
	r.ID = relID
	m.Relationships[i] = r
	return nil
}

// DeleteRelationship removes the relationship from the model.
func (s *Store) DeleteRelationship(modelID, relID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(modelID)
	if err != nil {
		return err
	}
	n := len(m.Relationships)
	m.Relationships = slices.DeleteFunc(m.Relationships, func(r *edge.Descriptor) bool { return r.ID == relID })
	if len(m.Relationships) == n {
		return blueprint.NewNotFoundErrorWithID("relationship", relID)
	}
	return nil
}

// model returns the stored model. Callers must hold the lock.
func (s *Store) model(id string) (*schema.Model, error) {
	i := s.modelIndex(id)
	if i < 0 {
		return nil, blueprint.NewNotFoundErrorWithID("model", id)
	}
	return s.doc.Models[i], nil
}

// =============================================================================
// Projects
// =============================================================================

// AddProject adds an empty project with a new id.
func (s *Store) AddProject(name, description string) (*schema.Project, error) {
	if name == "" {
		return nil, blueprint.NewValidationError("project", errProjectName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now()
	p := &schema.Project{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Models:      []string{},
	}
	s.doc.Projects = append(s.doc.Projects, p)
	s.logger.Debug("project added", "id", p.ID, "name", p.Name)
	return p.Clone(), nil
}

// UpdateProject applies fn to a copy of the project and bumps UpdatedAt.
// The id, creation time and model list cannot be changed.
func (s *Store) UpdateProject(id string, fn func(*schema.Project)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("project", id)
	}
	old := s.doc.Projects[i]
	p := old.Clone()
	fn(p)
	if p.Name == "" {
		return blueprint.NewValidationError(id, errProjectName)
	}
	p.ID, p.CreatedAt, p.Models = old.ID, old.CreatedAt, old.Models
	p.UpdatedAt = s.now()
	s.doc.Projects[i] = p
	return nil
}

// DeleteProject removes the project and clears the active project when it
// was the one removed. Models are kept.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return blueprint.NewNotFoundErrorWithID("project", id)
	}
	s.doc.Projects = slices.Delete(s.doc.Projects, i, i+1)
	if s.doc.ActiveProject == id {
		s.doc.ActiveProject = ""
	}
	return nil
}

// SetActiveProject sets the project new models are added to. An empty id
// clears it.
func (s *Store) SetActiveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.projectIndex(id) < 0 {
		return blueprint.NewNotFoundErrorWithID("project", id)
	}
	s.doc.ActiveProject = id
	return nil
}

// ActiveProject returns the active project, or nil when none is set.
func (s *Store) ActiveProject() *schema.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Project(s.doc.ActiveProject).Clone()
}

// AddModelToProject appends the model id to the project once and bumps
// UpdatedAt. Adding a model that is already listed is a no-op.
func (s *Store) AddModelToProject(projectID, modelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.project(projectID)
	if err != nil {
		return err
	}
	if s.modelIndex(modelID) < 0 {
		return blueprint.NewNotFoundErrorWithID("model", modelID)
	}
	if slices.Contains(p.Models, modelID) {
		return nil
	}
	p.Models = append(p.Models, modelID)
	p.UpdatedAt = s.now()
	return nil
}

// RemoveModelFromProject removes the model id from the project and bumps
// UpdatedAt. The model itself is kept.
func (s *Store) RemoveModelFromProject(projectID, modelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.project(projectID)
	if err != nil {
		return err
	}
	p.Models = slices.DeleteFunc(p.Models, func(id string) bool { return id == modelID })
	p.UpdatedAt = s.now()
	return nil
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (*schema.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.project(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Projects returns all projects in insertion order.
func (s *Store) Projects() []*schema.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ps := make([]*schema.Project, len(s.doc.Projects))
	for i, p := range s.doc.Projects {
		ps[i] = p.Clone()
	}
	return ps
}

// ProjectModels returns the models of the project in store order. Ids that
// name no model are skipped.
func (s *Store) ProjectModels(id string) ([]*schema.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.project(id)
	if err != nil {
		return nil, err
	}
	var ms []*schema.Model
	for _, m := range s.doc.Models {
		if slices.Contains(p.Models, m.ID) {
			ms = append(ms, m.Clone())
		}
	}
	return ms, nil
}

func (s *Store) projectIndex(id string) int {
	return slices.IndexFunc(s.doc.Projects, func(p *schema.Project) bool { return p.ID == id })
}

// project returns the stored project. Callers must hold the lock.
func (s *Store) project(id string) (*schema.Project, error) {
	i := s.projectIndex(id)
	if i < 0 {
		return nil, blueprint.NewNotFoundErrorWithID("project", id)
	}
	return s.doc.Projects[i], nil
}

func cloneModels(ms []*schema.Model) []*schema.Model {
	out := make([]*schema.Model, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}
