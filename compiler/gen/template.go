package gen

import (
	"embed"
	"strings"
	"text/template"
)

var (
	//go:embed template/*.tmpl
	templateDir embed.FS

	// Funcs are the functions available to the source templates.
	Funcs = template.FuncMap{
		"join": strings.Join,
	}

	// templates holds the parsed skeletons, keyed by file name.
	templates = template.Must(template.New("blueprint").Funcs(Funcs).ParseFS(templateDir, "template/*.tmpl"))
)

// execute renders the named template. Rendering failures are reported as
// GenerationError with the template name as phase.
func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", NewGenerationError(strings.TrimSuffix(name, ".tmpl"), "", "execute template", err)
	}
	return b.String(), nil
}
