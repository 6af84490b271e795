package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes wires up the read-only catalog API.
func RegisterRoutes(r chi.Router, h *Holder) {
	rh := &routeHandler{holder: h}
	r.Route("/api/concepts", func(r chi.Router) {
		r.Get("/", rh.listConcepts)
		r.Get("/{concept}", rh.getConcept)
		r.Get("/{concept}/units", rh.listUnits)
		r.Get("/{concept}/units/{unit}", rh.getUnit)
	})
}

type routeHandler struct {
	holder *Holder
}

func (h *routeHandler) listConcepts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.holder.Load().Concepts())
}

func (h *routeHandler) getConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "concept")
	reg := h.holder.Load()
	c, err := reg.GetConcept(id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	units, _ := reg.ListUnits(id)
	type conceptWithUnits struct {
		ID            string        `json:"id"`
		DisplayName   string        `json:"display_name"`
		Summary       string        `json:"summary,omitempty"`
		DefaultUnitID string        `json:"default_unit,omitempty"`
		Overview      *Overview     `json:"overview,omitempty"`
		Units         []UnitSummary `json:"units"`
	}
	writeJSON(w, http.StatusOK, conceptWithUnits{
		ID:            c.ID,
		DisplayName:   c.DisplayName,
		Summary:       c.Summary,
		DefaultUnitID: c.DefaultUnitID,
		Overview:      c.Overview,
		Units:         units,
	})
}

func (h *routeHandler) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.holder.Load().ListUnits(chi.URLParam(r, "concept"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *routeHandler) getUnit(w http.ResponseWriter, r *http.Request) {
	u, err := h.holder.GetUnit(chi.URLParam(r, "concept"), chi.URLParam(r, "unit"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeLookupError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("registry: encoding response: %v\n", err)
	}
}
