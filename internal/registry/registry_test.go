package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
)

func inheritance() *Concept {
	return &Concept{
		ID:          "inheritance",
		DisplayName: "Inheritance",
		Overview:    &Overview{Title: "Understanding Inheritance", Body: "Reuse through parent classes."},
		Units: []*ContentUnit{
			{ID: "single", Title: "Single Inheritance", Group: "Types of Inheritance"},
			{ID: "multiple", Title: "Multiple Inheritance", Group: "Types of Inheritance"},
			{ID: "multilevel", Title: "Multilevel Inheritance", Group: "Types of Inheritance"},
		},
	}
}

func constructor() *Concept {
	return &Concept{
		ID:            "constructor",
		DisplayName:   "Constructor",
		DefaultUnitID: "home",
		Units: []*ContentUnit{
			{ID: "home", Title: "What is a Constructor?"},
			{ID: "default", Title: "Default Constructor"},
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := New(Welcome{Title: "Welcome"}, inheritance(), constructor())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return reg
}

func TestListUnitsOrder(t *testing.T) {
	reg := testRegistry(t)

	units, err := reg.ListUnits("inheritance")
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	want := []string{"single", "multiple", "multilevel"}
	if len(units) != len(want) {
		t.Fatalf("got %d units, want %d", len(units), len(want))
	}
	for i, u := range units {
		if u.ID != want[i] {
			t.Errorf("units[%d] = %q, want %q", i, u.ID, want[i])
		}
		if u.Group != "Types of Inheritance" {
			t.Errorf("units[%d].Group = %q", i, u.Group)
		}
	}
}

func TestListUnitsReturnsFreshSlice(t *testing.T) {
	reg := testRegistry(t)

	first, _ := reg.ListUnits("inheritance")
	first[0].Title = "mutated"
	second, _ := reg.ListUnits("inheritance")
	if second[0].Title != "Single Inheritance" {
		t.Errorf("caller mutation leaked into registry: %q", second[0].Title)
	}
}

func TestLookupsNotFound(t *testing.T) {
	reg := testRegistry(t)

	if _, err := reg.GetConcept("nosuch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConcept: got %v, want ErrNotFound", err)
	}
	if _, err := reg.GetUnit("inheritance", "nosuch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUnit unknown unit: got %v", err)
	}
	if _, err := reg.GetUnit("nosuch", "single"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUnit unknown concept: got %v", err)
	}
	// Units are scoped to their concept.
	if _, err := reg.GetUnit("constructor", "single"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUnit cross-concept: got %v", err)
	}
	if _, err := reg.ListUnits("nosuch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListUnits: got %v", err)
	}
}

func TestDefaultUnit(t *testing.T) {
	reg := testRegistry(t)

	u, err := reg.DefaultUnit("constructor")
	if err != nil || u == nil || u.ID != "home" {
		t.Fatalf("DefaultUnit(constructor) = %v, %v", u, err)
	}
	u, err = reg.DefaultUnit("inheritance")
	if err != nil || u != nil {
		t.Errorf("DefaultUnit(inheritance) = %v, %v; want nil, nil", u, err)
	}
}

func TestNewRejectsInvalidCatalogs(t *testing.T) {
	badDemo := &ContentUnit{ID: "bad", Title: "Bad", Demo: &demo.Spec{
		Steppers: []demo.StepperSpec{{Name: "s"}},
	}}

	tests := []struct {
		name     string
		concepts []*Concept
		wantErr  string
	}{
		{"duplicate concept", []*Concept{constructor(), constructor()}, "duplicate id"},
		{"missing id", []*Concept{{DisplayName: "X"}}, "id is required"},
		{"missing name", []*Concept{{ID: "x"}}, "display_name is required"},
		{"duplicate unit", []*Concept{{ID: "x", DisplayName: "X", Units: []*ContentUnit{
			{ID: "a", Title: "A"}, {ID: "a", Title: "A again"},
		}}}, "duplicate unit"},
		{"untitled unit", []*Concept{{ID: "x", DisplayName: "X", Units: []*ContentUnit{{ID: "a"}}}}, "title is required"},
		{"bad default", []*Concept{{ID: "x", DisplayName: "X", DefaultUnitID: "missing", Units: []*ContentUnit{
			{ID: "a", Title: "A"},
		}}}, "default unit"},
		{"invalid demo", []*Concept{{ID: "x", DisplayName: "X", Units: []*ContentUnit{badDemo}}}, "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Welcome{}, tt.concepts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWalkVisitsOverviewsAndUnits(t *testing.T) {
	reg := testRegistry(t)

	var got []string
	err := reg.Walk(func(c *Concept, u *ContentUnit) error {
		if u == nil {
			got = append(got, c.ID)
			return nil
		}
		got = append(got, c.ID+"/"+u.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := "inheritance inheritance/single inheritance/multiple inheritance/multilevel constructor/home constructor/default"
	if strings.Join(got, " ") != want {
		t.Errorf("Walk order:\n got %v\nwant %s", got, want)
	}
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder(testRegistry(t))
	if _, err := h.GetUnit("constructor", "home"); err != nil {
		t.Fatalf("GetUnit: %v", err)
	}

	next, err := New(Welcome{}, inheritance())
	if err != nil {
		t.Fatal(err)
	}
	h.Store(next)
	if _, err := h.GetConcept("constructor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale registry still served: %v", err)
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHolder(testRegistry(t)))

	tests := []struct {
		path   string
		status int
	}{
		{"/api/concepts/", http.StatusOK},
		{"/api/concepts/inheritance", http.StatusOK},
		{"/api/concepts/inheritance/units", http.StatusOK},
		{"/api/concepts/inheritance/units/multiple", http.StatusOK},
		{"/api/concepts/nosuch", http.StatusNotFound},
		{"/api/concepts/nosuch/units", http.StatusNotFound},
		{"/api/concepts/inheritance/units/nosuch", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("GET %s: status %d, want %d", tt.path, w.Code, tt.status)
		}
	}
}

func TestRoutesConceptBody(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHolder(testRegistry(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/concepts/inheritance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		ID       string        `json:"id"`
		Overview *Overview     `json:"overview"`
		Units    []UnitSummary `json:"units"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Overview == nil || body.Overview.Title != "Understanding Inheritance" {
		t.Errorf("overview = %+v", body.Overview)
	}
	if len(body.Units) != 3 {
		t.Errorf("got %d units", len(body.Units))
	}
}
