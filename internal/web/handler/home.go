package handler

import (
	"net/http"
)

// IndexPath is where the signup page lives under the static mount
const IndexPath = "/static/index.html"

// Home redirects to the static signup page
func Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// NotFound renders the HTML 404 page
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "Page not found", "There is nothing at "+r.URL.Path+".")
}

// StaticFile serves a single file from fsys without http.FileServer's index redirect
func StaticFile(fsys http.FileSystem, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := fsys.Open(name)
		if err != nil {
			NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, info.ModTime(), f)
	})
}
