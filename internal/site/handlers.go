package site

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// RegisterRoutes mounts rendered pages, the static assets and the resolve
// endpoint. Pages are a catch-all, so other routes take precedence.
func RegisterRoutes(r chi.Router, rd *Renderer) {
	r.Get("/assets/{name}", assetHandler)
	r.Get("/api/resolve", resolveHandler(rd))
	r.Get("/", pageHandler(rd))
	r.Get("/*", pageHandler(rd))
}

func assetHandler(w http.ResponseWriter, r *http.Request) {
	content, contentType, ok := Asset(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(content))
}

func resolveHandler(rd *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			path = "/"
		}
		nav := rd.Router().Resolve(path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nav)
	}
}

func pageHandler(rd *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav := rd.Router().Resolve(r.URL.EscapedPath())

		var buf bytes.Buffer
		if err := rd.RenderPage(&buf, nav); err != nil {
			log.Printf("site: rendering %s: %v", r.URL.Path, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if nav.Kind == router.KindNotFound {
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(buf.Bytes())
	}
}
