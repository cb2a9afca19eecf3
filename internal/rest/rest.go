package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

// FrontendHandler serves the static browser UI with an index.html fallback for
// client-side routes.
type FrontendHandler struct {
	root  string
	index string
}

func NewFrontendHandler(root, index string) *FrontendHandler {
	return &FrontendHandler{root: root, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.index))
		return
	}

	http.ServeFile(w, r, path)
}
