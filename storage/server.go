package storage

import (
	"net/http"
	"strings"
)

// FileServer serves stored files under route, e.g. GET /uploads/<name>.
func FileServer(store FileStore, route string) http.Handler {
	prefix := NormalizeRoute(route) + "/"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		name, err := cleanName(strings.TrimPrefix(r.URL.Path, prefix))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		f, modTime, err := store.Open(name)
		if err != nil {
			if IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, name, modTime, f)
	})
}
