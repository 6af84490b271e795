package site

import (
	"strings"

	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// linker builds hrefs for either the live server or the static export.
// Exported pages link to index.html files relative to their own depth so
// the export can be browsed from disk.
type linker struct {
	static bool
	base   string
}

func (r *Renderer) linker(nav router.NavigationState) linker {
	if !r.opts.Static {
		return linker{}
	}
	return linker{static: true, base: relativeBase(nav)}
}

// relativeBase returns the prefix leading from the page for nav back to the
// export root. The 404 page may be served at any depth, so it uses the
// absolute root.
func relativeBase(nav router.NavigationState) string {
	if nav.Kind == router.KindNotFound {
		return "/"
	}
	trimmed := strings.Trim(nav.Path, "/")
	if trimmed == "" {
		return ""
	}
	return strings.Repeat("../", strings.Count(trimmed, "/")+1)
}

func (l linker) href(path string) string {
	if !l.static {
		return path
	}
	rel := strings.Trim(path, "/")
	if rel == "" {
		return l.base + "index.html"
	}
	return l.base + rel + "/index.html"
}

func (l linker) assets() string {
	if !l.static {
		return "/assets/"
	}
	return l.base + "assets/"
}
