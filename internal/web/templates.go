package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/hybridzdynamics/portfolio/internal/effects"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/css/*.css static/js/*.js static/img/*.svg
var staticFS embed.FS

// sectionHeading feeds the "heading" partial.
type sectionHeading struct {
	Text   string
	Reveal *effects.Reveal
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"heading": func(text string, r *effects.Reveal) sectionHeading {
			return sectionHeading{Text: text, Reveal: r}
		},
	}
}

// parseTemplates loads every embedded template into one set, keyed by file name.
func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return t, nil
}

// StaticFS is the embedded asset tree rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
