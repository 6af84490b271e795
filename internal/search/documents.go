// Package search indexes the content catalog in SQLite for lexical lookup.
package search

import (
	"strings"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// Document is one searchable page: a unit, or a concept overview.
type Document struct {
	Path        string `json:"path"`
	ConceptID   string `json:"concept"`
	UnitID      string `json:"unit,omitempty"`
	Title       string `json:"title"`
	ConceptName string `json:"concept_name"`
	Summary     string `json:"summary,omitempty"`
	Body        string `json:"body,omitempty"`
	Code        string `json:"code,omitempty"`
}

// Documents flattens the registry into documents in catalog order.
func Documents(reg *registry.Registry) []Document {
	var docs []Document
	_ = reg.Walk(func(c *registry.Concept, u *registry.ContentUnit) error {
		if u == nil {
			doc := Document{
				Path:        router.Path(c.ID, ""),
				ConceptID:   c.ID,
				Title:       c.DisplayName,
				ConceptName: c.DisplayName,
				Summary:     c.Summary,
			}
			if c.Overview != nil {
				doc.Title = c.Overview.Title
				doc.Body = c.Overview.Body
			}
			docs = append(docs, doc)
			return nil
		}
		docs = append(docs, unitDocument(c, u))
		return nil
	})
	return docs
}

func unitDocument(c *registry.Concept, u *registry.ContentUnit) Document {
	var body, code []string
	for _, s := range u.Sections {
		if s.Heading != "" {
			body = append(body, s.Heading)
		}
		if s.Text != "" {
			body = append(body, s.Text)
		}
		if s.Code != nil {
			if s.Code.Caption != "" {
				body = append(body, s.Code.Caption)
			}
			code = append(code, s.Code.Source)
		}
	}
	demoBody, demoCode := demoText(u.Demo)
	body = append(body, demoBody...)
	code = append(code, demoCode...)

	return Document{
		Path:        router.Path(c.ID, u.ID),
		ConceptID:   c.ID,
		UnitID:      u.ID,
		Title:       u.Title,
		ConceptName: c.DisplayName,
		Summary:     u.Summary,
		Body:        strings.Join(body, "\n"),
		Code:        strings.Join(code, "\n"),
	}
}

// demoText collects the prose and code a demo can show.
func demoText(s *demo.Spec) (body, code []string) {
	if s == nil {
		return nil, nil
	}
	for _, st := range s.Steppers {
		for _, step := range st.Steps {
			body = append(body, step.Title, step.Detail)
		}
	}
	for _, tg := range s.Toggles {
		body = append(body, tg.Label)
		code = append(code, tg.Content)
	}
	options := func(opts []demo.Option) {
		for _, o := range opts {
			body = append(body, o.Label, o.Detail)
			code = append(code, o.Code)
		}
	}
	for _, sel := range s.Selectors {
		options(sel.Options)
	}
	for _, set := range s.Sets {
		options(set.Members)
	}
	for _, rv := range s.Reveals {
		body = append(body, rv.Items...)
	}
	return compact(body), compact(code)
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
