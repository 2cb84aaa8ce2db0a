package web

import (
	"embed"
	"net/http"
)

//go:embed index.html
var content embed.FS

// Handler serves the single-page client. Mount it with the prefix stripped.
func Handler() http.Handler {
	return http.FileServerFS(content)
}
