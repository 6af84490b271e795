package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/oopconcepts/internal/progress"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
	"github.com/ziadkadry99/oopconcepts/internal/search"
)

// SiteGenerator exports the catalog as a static HTML site.
type SiteGenerator struct {
	Renderer  *Renderer
	Holder    *registry.Holder
	OutputDir string
	Reporter  progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator. The renderer must have been
// built with Options.Static set.
func NewSiteGenerator(h *registry.Holder, r *Renderer, outputDir string) *SiteGenerator {
	return &SiteGenerator{
		Renderer:  r,
		Holder:    h,
		OutputDir: outputDir,
		Reporter:  progress.Nop{},
	}
}

// Paths returns every routable path of the registry in catalog order: the
// root, each concept path and each unit path.
func Paths(reg *registry.Registry) []string {
	paths := []string{"/"}
	for _, c := range reg.Concepts() {
		paths = append(paths, router.Path(c.ID, ""))
		units, _ := reg.ListUnits(c.ID)
		for _, u := range units {
			paths = append(paths, router.Path(c.ID, u.ID))
		}
	}
	return paths
}

// Generate writes the site. Returns the number of pages generated, 404.html
// included.
func (g *SiteGenerator) Generate() (int, error) {
	if !g.Renderer.Static() {
		return 0, fmt.Errorf("site generator needs a static renderer")
	}
	reg := g.Holder.Load()

	if err := os.MkdirAll(filepath.Join(g.OutputDir, "assets"), 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}
	if err := WriteAssets(filepath.Join(g.OutputDir, "assets")); err != nil {
		return 0, err
	}
	if err := WriteSearchIndex(search.Documents(reg), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	paths := Paths(reg)
	rt := g.Renderer.Router()

	g.Reporter.Start(len(paths) + 1)
	defer g.Reporter.Finish()

	count := 0
	for _, p := range paths {
		nav := rt.Resolve(p)
		if nav.Kind == router.KindNotFound {
			return count, fmt.Errorf("path %s does not resolve", p)
		}
		var err error
		if nav.Path != p {
			// A concept path that resolves to its default unit.
			err = writeRedirect(filepath.Join(g.OutputDir, pageFile(p)), url.PathEscape(nav.UnitID)+"/index.html")
		} else {
			err = g.renderPage(nav, pageFile(p))
		}
		if err != nil {
			return count, fmt.Errorf("rendering %s: %w", p, err)
		}
		count++
		g.Reporter.Update(count, p)
	}

	nav := router.NavigationState{Kind: router.KindNotFound, Path: "/404"}
	if err := g.renderPage(nav, "404.html"); err != nil {
		return count, fmt.Errorf("rendering 404 page: %w", err)
	}
	count++
	g.Reporter.Update(count, "404.html")

	return count, nil
}

// pageFile maps a path produced by router.Path to its file below the
// output dir.
func pageFile(p string) string {
	parts := []string{}
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		parts = append(parts, seg)
	}
	return filepath.Join(append(parts, "index.html")...)
}

const redirectTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta http-equiv="refresh" content="0; url=%[1]s">
<link rel="canonical" href="%[1]s">
</head>
<body><a href="%[1]s">Continue</a></body>
</html>
`

func writeRedirect(outPath, target string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	target = template.HTMLEscapeString(target)
	return os.WriteFile(outPath, []byte(fmt.Sprintf(redirectTemplate, target)), 0o644)
}

func (g *SiteGenerator) renderPage(nav router.NavigationState, rel string) error {
	var buf bytes.Buffer
	if err := g.Renderer.RenderPage(&buf, nav); err != nil {
		return err
	}
	outPath := filepath.Join(g.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// WriteAssets writes style.css and script.js into dir.
func WriteAssets(dir string) error {
	for name, content := range map[string]string{"style.css": cssContent, "script.js": jsContent} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// Asset returns the named static asset and its content type.
func Asset(name string) (content, contentType string, ok bool) {
	switch strings.TrimPrefix(name, "/") {
	case "style.css":
		return cssContent, "text/css; charset=utf-8", true
	case "script.js":
		return jsContent, "application/javascript; charset=utf-8", true
	}
	return "", "", false
}
