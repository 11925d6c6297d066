// Package templates holds the server-rendered HTML pages.
package templates

import (
	"embed"
	"html/template"
	"path"
	"strconv"
	"time"
)

//go:embed html
var files embed.FS

// Funcs are available to every page.
var Funcs = template.FuncMap{
	// safe marks text already cleaned by the sanitizer on the way in.
	"safe": func(s string) template.HTML { return template.HTML(s) },
	"media": func(name string) string {
		if name == "" {
			return ""
		}
		return path.Join("/media", name)
	},
	"date": func(t time.Time) string { return t.Format("2 January 2006") },
	"datetime": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"selected": func(current string, id uint) bool {
		return current != "" && current == strconv.FormatUint(uint64(id), 10)
	},
}

// Load parses every embedded page. Pages are addressed by the name in their
// define block, e.g. "posts/index.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files,
		"html/*.html",
		"html/posts/*.html",
		"html/users/*.html",
		"html/about/*.html",
		"html/core/*.html",
	)
}

// MustLoad is Load for program start-up.
func MustLoad() *template.Template {
	return template.Must(Load())
}

