package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
)

// layoutBlock is the template every page is rendered through.
const layoutBlock = "base"

// View holds one template set per page, each combined with the shared layouts.
type View struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// Section bodies are sanitized when written, so they are trusted here.
	"markup": func(s string) template.HTML { return template.HTML(s) },
}

// New parses templates/pages/*.html, each together with templates/layouts/*.html.
// A page defines the "title" and "content" blocks used by the layout.
func New(templateFS fs.FS) (*View, error) {
	layouts, err := fs.Glob(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	v := &View{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := path.Base(page)
		files := append(append([]string(nil), layouts...), page)
		ts, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		v.pages[name] = ts
	}
	return v, nil
}

// Render executes a page template, such as "view.html", inside the layout.
// Nothing is written to w if execution fails.
func (v *View) Render(w io.Writer, name string, data map[string]interface{}) error {
	ts, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, layoutBlock, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
