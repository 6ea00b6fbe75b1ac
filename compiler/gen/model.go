package gen

import (
	"github.com/syssam/blueprint/schema"
)

// DefaultNamespace is the namespace of generated model classes.
const DefaultNamespace = `App\Models`

// modelData is the input of the model template.
type modelData struct {
	Namespace   string
	Name        string
	SoftDeletes bool
	Traits      []string
	Table       string
	Timestamps  bool
	Fillable    []string
	Methods     []string
}

// ModelCode returns the Eloquent model class of m in the default namespace.
//
// The complete model list is accepted so callers can pass the same arguments
// to every emitter; accessor generation does not resolve related models.
func ModelCode(m *schema.Model, _ []*schema.Model) (string, error) {
	return modelCode(m, DefaultNamespace)
}

func modelCode(m *schema.Model, namespace string) (string, error) {
	if err := checkModel(m); err != nil {
		return "", err
	}
	data := modelData{
		Namespace:   namespace,
		Name:        m.Name,
		SoftDeletes: m.SoftDeletes,
		Traits:      []string{"HasFactory"},
		Table:       m.TableName,
		Timestamps:  m.Timestamps,
		Fillable:    make([]string, 0, len(m.Fields)),
		Methods:     Relationships(m),
	}
	if m.SoftDeletes {
		data.Traits = append(data.Traits, "SoftDeletes")
	}
	for _, f := range m.Fields {
		data.Fillable = append(data.Fillable, f.Name)
	}
	return execute("model.tmpl", data)
}
