package gen

import (
	"sort"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/blueprint/schema"
)

// =============================================================================
// Naming conventions
//
// Pluralization is the literal "s" suffix everywhere: "Category" becomes
// "categorys", not "categories". Table names, foreign-key targets and
// accessor names must agree with each other, so no irregular forms are
// applied to any of them.
// =============================================================================

// TableName returns the table of the model: the explicit TableName when set,
// otherwise the lowercased model name with an "s" suffix.
func TableName(m *schema.Model) string {
	if m.TableName != "" {
		return m.TableName
	}
	return plural(lower(m.Name))
}

// DefaultForeignKey returns the conventional foreign-key column that
// references the given model.
func DefaultForeignKey(related string) string {
	return lower(related) + "_id"
}

// DefaultPivotTable returns the conventional pivot table joining two models:
// both names lowercased, sorted ascending and joined by "_".
func DefaultPivotTable(a, b string) string {
	return strings.Join(sortedLower(a, b), "_")
}

// ClassName returns the migration class name of a table, for example
// "CreateBlogPostsTable" for "blog_posts". Underscores, dashes and spaces
// separate words, and the first rune of each word is upper-cased.
func ClassName(table string) string {
	return "Create" + inflect.Camelize(table) + "Table"
}

// lower lowercases s. A Caser holds state, so one is created per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func plural(s string) string {
	return s + "s"
}

// sortedLower returns the lowercased names in ascending order.
func sortedLower(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = lower(n)
	}
	sort.Strings(out)
	return out
}
