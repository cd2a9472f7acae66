// Package web embeds the page templates and static assets of the wiki.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

// TemplateFS holds templates/layouts/*.html and templates/pages/*.html.
var TemplateFS fs.FS = templates

// StaticFS holds static/, served under the /static/ route.
var StaticFS fs.FS = static
