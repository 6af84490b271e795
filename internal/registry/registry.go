// Package registry holds the read-only catalog of concepts and content units.
package registry

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrNotFound is returned by lookups for unknown slugs.
var ErrNotFound = errors.New("not found")

// Registry is the static catalog. It is immutable after New and safe for
// concurrent readers.
type Registry struct {
	welcome  Welcome
	concepts []*Concept
	byID     map[string]*Concept
	units    map[string]map[string]*ContentUnit
}

// New validates the given concepts and builds a registry. Concepts keep the
// order they are passed in.
func New(welcome Welcome, concepts ...*Concept) (*Registry, error) {
	r := &Registry{
		welcome: welcome,
		byID:    make(map[string]*Concept, len(concepts)),
		units:   make(map[string]map[string]*ContentUnit, len(concepts)),
	}

	for _, c := range concepts {
		if c == nil {
			return nil, fmt.Errorf("nil concept")
		}
		if c.ID == "" {
			return nil, fmt.Errorf("concept %q: id is required", c.DisplayName)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("concept %q: duplicate id", c.ID)
		}
		if c.DisplayName == "" {
			return nil, fmt.Errorf("concept %q: display_name is required", c.ID)
		}

		units := make(map[string]*ContentUnit, len(c.Units))
		for _, u := range c.Units {
			if u == nil || u.ID == "" {
				return nil, fmt.Errorf("concept %q: unit id is required", c.ID)
			}
			if _, dup := units[u.ID]; dup {
				return nil, fmt.Errorf("concept %q: duplicate unit %q", c.ID, u.ID)
			}
			if u.Title == "" {
				return nil, fmt.Errorf("unit %s/%s: title is required", c.ID, u.ID)
			}
			if err := u.Demo.Validate(); err != nil {
				return nil, fmt.Errorf("unit %s/%s: demo: %w", c.ID, u.ID, err)
			}
			units[u.ID] = u
		}
		if c.DefaultUnitID != "" {
			if _, ok := units[c.DefaultUnitID]; !ok {
				return nil, fmt.Errorf("concept %q: default unit %q is not one of its units", c.ID, c.DefaultUnitID)
			}
		}

		r.byID[c.ID] = c
		r.units[c.ID] = units
		r.concepts = append(r.concepts, c)
	}

	return r, nil
}

// Welcome returns the landing view.
func (r *Registry) Welcome() Welcome { return r.welcome }

// GetConcept looks up a concept by slug.
func (r *Registry) GetConcept(id string) (*Concept, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("concept %q: %w", id, ErrNotFound)
	}
	return c, nil
}

// GetUnit looks up a unit owned by the given concept.
func (r *Registry) GetUnit(conceptID, unitID string) (*ContentUnit, error) {
	units, ok := r.units[conceptID]
	if !ok {
		return nil, fmt.Errorf("concept %q: %w", conceptID, ErrNotFound)
	}
	u, ok := units[unitID]
	if !ok {
		return nil, fmt.Errorf("unit %s/%s: %w", conceptID, unitID, ErrNotFound)
	}
	return u, nil
}

// DefaultUnit returns the concept's default unit. When the concept declares
// none, u and err are both nil and callers show the concept overview instead.
// An unknown concept gives an error wrapping ErrNotFound.
func (r *Registry) DefaultUnit(conceptID string) (*ContentUnit, error) {
	c, err := r.GetConcept(conceptID)
	if err != nil {
		return nil, err
	}
	if c.DefaultUnitID == "" {
		return nil, nil
	}
	return r.units[conceptID][c.DefaultUnitID], nil
}

// ListUnits returns the concept's units in sidebar order. Each call returns
// a new slice.
func (r *Registry) ListUnits(conceptID string) ([]UnitSummary, error) {
	c, err := r.GetConcept(conceptID)
	if err != nil {
		return nil, err
	}
	out := make([]UnitSummary, 0, len(c.Units))
	for _, u := range c.Units {
		out = append(out, UnitSummary{ID: u.ID, Title: u.Title, Group: u.Group})
	}
	return out, nil
}

// Concepts returns the navbar entries in order.
func (r *Registry) Concepts() []ConceptSummary {
	out := make([]ConceptSummary, 0, len(r.concepts))
	for _, c := range r.concepts {
		out = append(out, ConceptSummary{
			ID:            c.ID,
			DisplayName:   c.DisplayName,
			Summary:       c.Summary,
			DefaultUnitID: c.DefaultUnitID,
			UnitCount:     len(c.Units),
		})
	}
	return out
}

// Walk calls fn for every unit in catalog order. Concepts without a default
// unit are first visited once with a nil unit, standing for their overview.
func (r *Registry) Walk(fn func(c *Concept, u *ContentUnit) error) error {
	for _, c := range r.concepts {
		if c.DefaultUnitID == "" {
			if err := fn(c, nil); err != nil {
				return err
			}
		}
		for _, u := range c.Units {
			if err := fn(c, u); err != nil {
				return err
			}
		}
	}
	return nil
}

// Holder publishes the current registry to concurrent readers and lets a
// reload swap it atomically.
type Holder struct {
	p atomic.Pointer[Registry]
}

// NewHolder returns a holder initialised with reg.
func NewHolder(reg *Registry) *Holder {
	h := &Holder{}
	h.p.Store(reg)
	return h
}

// Load returns the current registry.
func (h *Holder) Load() *Registry { return h.p.Load() }

// Store replaces the current registry.
func (h *Holder) Store(reg *Registry) { h.p.Store(reg) }

// GetConcept delegates to the current registry.
func (h *Holder) GetConcept(id string) (*Concept, error) { return h.Load().GetConcept(id) }

// GetUnit delegates to the current registry.
func (h *Holder) GetUnit(conceptID, unitID string) (*ContentUnit, error) {
	return h.Load().GetUnit(conceptID, unitID)
}
