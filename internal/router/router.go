// Package router maps URL paths onto navigation states and keeps per-session
// browsing history.
package router

import (
	"net/url"
	"strings"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
)

// Kind classifies a resolved path.
type Kind string

const (
	KindWelcome  Kind = "welcome"
	KindUnit     Kind = "unit"
	KindOverview Kind = "overview"
	KindNotFound Kind = "not_found"
)

// NavigationState is what the renderer needs to draw a page. It is derived
// from a path on every navigation and never stored elsewhere.
type NavigationState struct {
	Kind      Kind   `json:"kind"`
	Path      string `json:"path"`
	ConceptID string `json:"concept_id,omitempty"`
	UnitID    string `json:"unit_id,omitempty"`
}

// Catalog is the subset of the registry the router consults.
// Both *registry.Registry and *registry.Holder satisfy it.
type Catalog interface {
	GetConcept(id string) (*registry.Concept, error)
	GetUnit(conceptID, unitID string) (*registry.ContentUnit, error)
}

// Router resolves paths against a catalog.
type Router struct {
	catalog Catalog
}

// New returns a router backed by catalog.
func New(catalog Catalog) *Router {
	return &Router{catalog: catalog}
}

// Resolve maps a path onto a navigation state. Unknown or malformed paths
// yield the not-found state.
func (rt *Router) Resolve(path string) NavigationState {
	segs, ok := split(path)
	if !ok {
		return notFound(path)
	}

	switch len(segs) {
	case 0:
		return NavigationState{Kind: KindWelcome, Path: "/"}
	case 1:
		c, err := rt.catalog.GetConcept(segs[0])
		if err != nil {
			return notFound(path)
		}
		if c.DefaultUnitID != "" {
			return NavigationState{Kind: KindUnit, Path: Path(c.ID, c.DefaultUnitID), ConceptID: c.ID, UnitID: c.DefaultUnitID}
		}
		return NavigationState{Kind: KindOverview, Path: Path(c.ID, ""), ConceptID: c.ID}
	case 2:
		u, err := rt.catalog.GetUnit(segs[0], segs[1])
		if err != nil {
			return notFound(path)
		}
		return NavigationState{Kind: KindUnit, Path: Path(segs[0], u.ID), ConceptID: segs[0], UnitID: u.ID}
	default:
		return notFound(path)
	}
}

// Path builds the canonical path for a concept or unit. An empty conceptID
// gives the root path.
func Path(conceptID, unitID string) string {
	switch {
	case conceptID == "":
		return "/"
	case unitID == "":
		return "/" + url.PathEscape(conceptID)
	default:
		return "/" + url.PathEscape(conceptID) + "/" + url.PathEscape(unitID)
	}
}

func notFound(path string) NavigationState {
	return NavigationState{Kind: KindNotFound, Path: path}
}

// split trims surrounding slashes and unescapes each segment. Empty inner
// segments ("/a//b") and undecodable escapes are rejected.
func split(path string) ([]string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, true
	}
	raw := strings.Split(path, "/")
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			return nil, false
		}
		dec, err := url.PathUnescape(s)
		if err != nil || dec == "" {
			return nil, false
		}
		segs = append(segs, dec)
	}
	return segs, true
}
