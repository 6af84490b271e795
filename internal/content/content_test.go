package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ziadkadry99/oopconcepts/internal/router"
)

func TestLoadEmbedded(t *testing.T) {
	snap, err := Load(Embedded(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg := snap.Registry

	if got := reg.Welcome().Title; got != "Welcome to OOP Concepts" {
		t.Errorf("welcome title = %q", got)
	}

	var ids []string
	for _, c := range reg.Concepts() {
		ids = append(ids, c.ID)
	}
	want := "inheritance abstraction encapsulation polymorphism constructor static"
	if strings.Join(ids, " ") != want {
		t.Errorf("concept order = %v, want %s", ids, want)
	}

	units, err := reg.ListUnits("inheritance")
	if err != nil {
		t.Fatal(err)
	}
	if len(units) < 5 || units[0].ID != "single" || units[0].Group != "Types of Inheritance" {
		t.Errorf("inheritance units = %+v", units)
	}
}

func TestEmbeddedRoutesResolve(t *testing.T) {
	snap, err := Load(Embedded(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rt := router.New(snap.Registry)

	tests := []struct {
		path string
		kind router.Kind
		unit string
	}{
		{"/abstraction", router.KindUnit, "car"},
		{"/constructor", router.KindUnit, "home"},
		{"/static", router.KindUnit, "static"},
		{"/encapsulation", router.KindOverview, ""},
		{"/polymorphism", router.KindOverview, ""},
		{"/inheritance", router.KindOverview, ""},
		{"/inheritance/downcasting", router.KindUnit, "downcasting"},
		{"/polymorphism/downcasting", router.KindUnit, "downcasting"},
	}
	for _, tt := range tests {
		nav := rt.Resolve(tt.path)
		if nav.Kind != tt.kind || nav.UnitID != tt.unit {
			t.Errorf("Resolve(%s) = %+v", tt.path, nav)
		}
	}
}

func TestSampleFilesAndLanguages(t *testing.T) {
	snap, err := Load(Embedded(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	u, err := snap.Registry.GetUnit("abstraction", "interface")
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, s := range u.Sections {
		if s.Code == nil {
			continue
		}
		found = true
		if !strings.Contains(s.Code.Source, "interface ElectricVehicle extends Vehicle") {
			t.Errorf("sample file not loaded: %q", s.Code.Source)
		}
		if s.Code.Language != "java" {
			t.Errorf("language = %q", s.Code.Language)
		}
	}
	if !found {
		t.Fatal("interface unit has no code sample")
	}

	single, _ := snap.Registry.GetUnit("inheritance", "single")
	for _, s := range single.Sections {
		if s.Code != nil && s.Code.Language != "javascript" {
			t.Errorf("explicit language overridden: %q", s.Code.Language)
		}
	}
}

func TestEmbeddedDemosAreMountable(t *testing.T) {
	snap, err := Load(Embedded(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, err := snap.Registry.GetUnit("constructor", "home")
	if err != nil {
		t.Fatal(err)
	}
	if !home.HasDemo() {
		t.Fatal("constructor home has no demo")
	}
	st := home.Demo.Initial()
	if st.Steps["scene"] != 0 || st.Toggles["code"] {
		t.Errorf("initial constructor state = %+v", st)
	}
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"site.yml": {Data: []byte("title: Test\nwelcome:\n  title: Hi\n")},
		"topics/b.yml": {Data: []byte(`id: beta
display_name: Beta
order: 1
units:
  - id: one
    title: One
    sections:
      - code:
          file: samples/One.kt
`)},
		"topics/a.yml":   {Data: []byte("id: alpha\ndisplay_name: Alpha\norder: 1\n")},
		"samples/One.kt": {Data: []byte("class One\n")},
	}
}

func TestLoadOrdersByOrderThenID(t *testing.T) {
	snap, err := Load(minimalFS(), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cs := snap.Registry.Concepts()
	if len(cs) != 2 || cs[0].ID != "alpha" || cs[1].ID != "beta" {
		t.Errorf("concepts = %+v", cs)
	}
	u, _ := snap.Registry.GetUnit("beta", "one")
	if u.Sections[0].Code.Language != "kotlin" || u.Sections[0].Code.Source != "class One" {
		t.Errorf("code = %+v", u.Sections[0].Code)
	}
	if len(snap.Files) != 4 {
		t.Errorf("fingerprinted %d files, want 4", len(snap.Files))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fstest.MapFS)
		wantErr string
	}{
		{"unknown key", func(m fstest.MapFS) {
			m["topics/a.yml"] = &fstest.MapFile{Data: []byte("id: alpha\ndisplay_name: Alpha\ncolour: red\n")}
		}, "parsing topics/a.yml"},
		{"missing sample", func(m fstest.MapFS) {
			delete(m, "samples/One.kt")
		}, "sample"},
		{"duplicate concept", func(m fstest.MapFS) {
			m["topics/c.yml"] = &fstest.MapFile{Data: []byte("id: alpha\ndisplay_name: Again\n")}
		}, "duplicate id"},
		{"no topics", func(m fstest.MapFS) {
			delete(m, "topics/a.yml")
			delete(m, "topics/b.yml")
		}, "no topic files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := minimalFS()
			tt.mutate(fsys)
			_, err := Load(fsys, Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadExclude(t *testing.T) {
	fsys := minimalFS()
	snap, err := Load(fsys, Options{Exclude: []string{"topics/a.yml"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := snap.Registry.GetConcept("alpha"); err == nil {
		t.Error("excluded topic was loaded")
	}
}

func TestSourceDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "topics"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "topics", "x.yml"), []byte("id: x\ndisplay_name: X\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys, err := Source(dir)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	snap, err := Load(fsys, Options{DefaultLanguage: "kotlin"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := snap.Registry.GetConcept("x"); err != nil {
		t.Errorf("GetConcept: %v", err)
	}

	if _, err := Source(filepath.Join(dir, "missing")); err == nil {
		t.Error("Source accepted a missing dir")
	}
}

func TestLoadRunDelay(t *testing.T) {
	snap, err := Load(Embedded(), Options{RunDelay: 250 * time.Millisecond})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	u, err := snap.Registry.GetUnit("constructor", "parameterized")
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Demo.Runs[0].Delay; got != 250*time.Millisecond {
		t.Errorf("undeclared delay = %v, want the configured 250ms", got)
	}

	u, err = snap.Registry.GetUnit("abstraction", "class")
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Demo.Runs[0].Delay; got != time.Second {
		t.Errorf("declared delay = %v, want 1s kept", got)
	}
}
