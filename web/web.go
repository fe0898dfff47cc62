// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

// Templates is the root of the page templates, for html.NewFileSystem.
func Templates() http.FileSystem { return sub("templates") }

func Static() http.FileSystem { return sub("static") }

func sub(dir string) http.FileSystem {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(f)
}
