// Package view holds the embedded HTML templates and stylesheet.
package view

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

var funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
}

// Templates parses every page. Pages are addressed by their define name,
// e.g. "index" or "new-book".
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}

func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
