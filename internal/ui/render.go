package ui

import (
	"net/http"

	"maragu.dev/gomponents"
)

// Render writes a full page or fragment.
func Render(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
