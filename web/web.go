// Package web embeds the HTML templates and static assets for the site.
// Serving them from the binary means templates and the running code are
// always in sync.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

// Templates returns the template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic("web: templates directory missing from embed: " + err.Error())
	}
	return sub
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic("web: static directory missing from embed: " + err.Error())
	}
	return sub
}
