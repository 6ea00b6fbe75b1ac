package gen

import (
	"strings"

	"github.com/syssam/blueprint/schema"
	"github.com/syssam/blueprint/schema/edge"
)

// relationRule describes how one relationship kind is declared on a model.
type relationRule struct {
	// plural adds the "s" suffix to the accessor name.
	plural bool
	// pivot passes the pivot table (when set) before the keys.
	pivot bool
}

// relationRules holds the kinds that produce accessor code. Kinds missing
// from the table contribute nothing to the model.
var relationRules = map[edge.Kind]relationRule{
	edge.KindHasOne:        {},
	edge.KindHasMany:       {plural: true},
	edge.KindBelongsTo:     {},
	edge.KindBelongsToMany: {plural: true, pivot: true},
}

// Mapped reports if the relationship kind produces accessor code.
func Mapped(k edge.Kind) bool {
	_, ok := relationRules[k]
	return ok
}

// AccessorName returns the accessor method name of the relationship, or an
// empty string for kinds that produce no code.
func AccessorName(rel *edge.Descriptor) string {
	rule, ok := relationRules[rel.Kind]
	if !ok {
		return ""
	}
	name := lower(rel.RelatedModel)
	if rule.plural {
		name = plural(name)
	}
	return name
}

// Relationship returns the accessor method declaring rel, or an empty string
// when the kind has no rule.
func Relationship(rel *edge.Descriptor) string {
	rule, ok := relationRules[rel.Kind]
	if !ok {
		return ""
	}
	var args []string
	if rule.pivot && rel.PivotTable != "" {
		args = append(args, rel.PivotTable)
	}
	if rel.ForeignKey != "" {
		args = append(args, rel.ForeignKey)
	}
	if rel.LocalKey != "" {
		args = append(args, rel.LocalKey)
	}
	return method(AccessorName(rel), "return $this->"+string(rel.Kind)+"("+rel.RelatedModel+"::class"+quoteArgs(args)+");")
}

// Relationships returns the accessor methods of the model in declaration
// order, skipping relationships that produce no code.
func Relationships(m *schema.Model) []string {
	methods := make([]string, 0, len(m.Relationships))
	for _, rel := range m.Relationships {
		if code := Relationship(rel); code != "" {
			methods = append(methods, code)
		}
	}
	return methods
}

// method renders a public class method with a one-statement body.
func method(name, stmt string) string {
	var b strings.Builder
	b.WriteString(indent + "public function " + name + "()\n")
	b.WriteString(indent + "{\n")
	b.WriteString(indent + indent + stmt + "\n")
	b.WriteString(indent + "}")
	return b.String()
}

// quoteArgs renders extra call arguments as ", 'a', 'b'".
func quoteArgs(args []string) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(", '")
		b.WriteString(a)
		b.WriteString("'")
	}
	return b.String()
}

const indent = "    "
