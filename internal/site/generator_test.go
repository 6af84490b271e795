package site

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
	"github.com/ziadkadry99/oopconcepts/internal/search"
)

func testHolder(t *testing.T) *registry.Holder {
	t.Helper()
	reg, err := registry.New(registry.Welcome{Title: "Welcome to OOP Concepts", Body: "Explore **objects**."},
		&registry.Concept{
			ID:          "inheritance",
			DisplayName: "Inheritance",
			Summary:     "Reuse through parents.",
			Overview:    &registry.Overview{Title: "Understanding Inheritance", Body: "Child classes extend parents."},
			Units: []*registry.ContentUnit{
				{ID: "single", Title: "Single Inheritance", Group: "Types of Inheritance", Sections: []registry.Section{
					{Heading: "Example", Text: "A `Dog` is an `Animal`.", Code: &registry.CodeSample{
						Language: "java", Caption: "Dog.java", Source: "class Dog extends Animal {}",
					}},
				}},
				{ID: "multiple", Title: "Multiple Inheritance", Group: "Types of Inheritance"},
				{ID: "upcasting", Title: "Upcasting", Demo: &demo.Spec{
					Steppers: []demo.StepperSpec{{Name: "cycle", Label: "Cycle", Steps: []demo.Step{
						{Title: "Create", Detail: "new **Dog**()"}, {Title: "Upcast"}, {Title: "Call"},
					}}},
					Selectors: []demo.SelectorSpec{{Name: "example", Clearable: true, Initial: "dog", Options: []demo.Option{
						{ID: "dog", Label: "Dog", Code: "Animal a = new Dog();"},
						{ID: "cat", Label: "Cat"},
					}}},
				}},
			},
		},
		&registry.Concept{
			ID:            "constructor",
			DisplayName:   "Constructor",
			DefaultUnitID: "home",
			Units: []*registry.ContentUnit{
				{ID: "home", Title: "What is a Constructor?"},
			},
		},
	)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return registry.NewHolder(reg)
}

func newRenderer(t *testing.T, h *registry.Holder, static bool) *Renderer {
	t.Helper()
	rd, err := NewRenderer(h, Options{SiteTitle: "OOP Concepts", Static: static, CodeLanguage: "java"})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return rd
}

func TestBuildTree(t *testing.T) {
	units := []registry.UnitSummary{
		{ID: "single", Title: "Single", Group: "Types"},
		{ID: "upcasting", Title: "Upcasting"},
		{ID: "multiple", Title: "Multiple", Group: "Types"},
	}
	tree := BuildTree("inheritance", units)

	if len(tree.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Children))
	}
	group := tree.Children[0]
	if !group.IsGroup || group.Title != "Types" {
		t.Errorf("first child = %+v, want the Types group", group)
	}
	// Later members join the group where it first appeared.
	if len(group.Children) != 2 || group.Children[1].UnitID != "multiple" {
		t.Errorf("group children = %+v", group.Children)
	}
	if tree.Children[1].UnitID != "upcasting" {
		t.Errorf("second child = %+v", tree.Children[1])
	}
}

func TestTreeToHTML(t *testing.T) {
	tree := BuildTree("inheritance", []registry.UnitSummary{
		{ID: "single", Title: "Single", Group: "Types"},
		{ID: "has-a", Title: "Has-A & Friends"},
	})
	href := func(id string) string { return "/inheritance/" + id }

	out := tree.ToHTML("has-a", href)
	if !strings.Contains(out, `<li class="group"><span class="group-toggle">Types</span>`) {
		t.Errorf("inactive group should be collapsed:\n%s", out)
	}
	if !strings.Contains(out, `<a href="/inheritance/has-a" data-nav class="active">Has-A &amp; Friends</a>`) {
		t.Errorf("active unit missing or unescaped:\n%s", out)
	}

	out = tree.ToHTML("single", href)
	if !strings.Contains(out, `<li class="group expanded">`) {
		t.Errorf("group holding the active unit should be expanded:\n%s", out)
	}

	out = tree.ToHTML("", href)
	if !strings.Contains(out, `<li class="group expanded">`) {
		t.Errorf("groups should be expanded when nothing is active:\n%s", out)
	}
}

func TestFence(t *testing.T) {
	tests := []struct {
		source string
		marker string
	}{
		{"int x = 1;", "```"},
		{"String s = \"```\";", "````"},
		{"a ```` b", "`````"},
	}
	for _, tt := range tests {
		got := fence("java", tt.source)
		if !strings.HasPrefix(got, tt.marker+"java\n") || !strings.HasSuffix(got, "\n"+tt.marker+"\n") {
			t.Errorf("fence(%q) = %q, want marker %q", tt.source, got, tt.marker)
		}
	}
}

func TestRelativeBase(t *testing.T) {
	tests := []struct {
		nav  router.NavigationState
		want string
	}{
		{router.NavigationState{Kind: router.KindWelcome, Path: "/"}, ""},
		{router.NavigationState{Kind: router.KindOverview, Path: "/inheritance"}, "../"},
		{router.NavigationState{Kind: router.KindUnit, Path: "/inheritance/single"}, "../../"},
		{router.NavigationState{Kind: router.KindNotFound, Path: "/a/b/c"}, "/"},
	}
	for _, tt := range tests {
		if got := relativeBase(tt.nav); got != tt.want {
			t.Errorf("relativeBase(%s) = %q, want %q", tt.nav.Path, got, tt.want)
		}
	}

	l := linker{static: true, base: "../../"}
	if got := l.href("/"); got != "../../index.html" {
		t.Errorf("href(/) = %q", got)
	}
	if got := l.href("/constructor/home"); got != "../../constructor/home/index.html" {
		t.Errorf("href(/constructor/home) = %q", got)
	}
	if got := (linker{}).href("/constructor/home"); got != "/constructor/home" {
		t.Errorf("live href = %q", got)
	}
}

func TestNewRendererRejectsUnknownStyle(t *testing.T) {
	_, err := NewRenderer(testHolder(t), Options{HighlightStyle: "no-such-style"})
	if err == nil {
		t.Fatal("expected error for unknown highlight style")
	}
}

func TestRenderPageUnit(t *testing.T) {
	rd := newRenderer(t, testHolder(t), false)
	nav := rd.Router().Resolve("/inheritance/single")

	var buf bytes.Buffer
	if err := rd.RenderPage(&buf, nav); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<title>Single Inheritance - OOP Concepts</title>",
		`data-live="true"`,
		`href="/assets/style.css"`,
		`<a href="/inheritance" data-nav data-concept="inheritance" class="active">Inheritance</a>`,
		`<li class="group expanded">`,
		`<a href="/inheritance/single" data-nav class="active">Single Inheritance</a>`,
		"<figcaption>Dog.java</figcaption>",
		"<code>Dog</code>",
		`data-kind="unit"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// Highlighted code is split into chroma spans.
	if !strings.Contains(page, "<pre") || !strings.Contains(page, "extends") {
		t.Error("page missing the highlighted code sample")
	}
	// No demo section for a unit without a demo.
	if strings.Contains(page, `id="demo"`) {
		t.Error("unexpected demo section")
	}
}

func TestRenderViewOverviewAndWelcome(t *testing.T) {
	rd := newRenderer(t, testHolder(t), false)

	view, err := rd.RenderView(rd.Router().Resolve("/inheritance"))
	if err != nil {
		t.Fatalf("RenderView: %v", err)
	}
	if view.Title != "Understanding Inheritance - OOP Concepts" {
		t.Errorf("title = %q", view.Title)
	}
	if !strings.Contains(view.HTML, `<li class="unit overview-link"><a href="/inheritance" data-nav class="active">Overview</a>`) {
		t.Errorf("overview link not active:\n%s", view.HTML)
	}
	if !strings.Contains(view.HTML, "Child classes extend parents.") {
		t.Error("overview body missing")
	}

	view, err = rd.RenderView(rd.Router().Resolve("/"))
	if err != nil {
		t.Fatalf("RenderView: %v", err)
	}
	if !strings.Contains(view.HTML, "<strong>objects</strong>") {
		t.Error("welcome markdown not rendered")
	}
	if !strings.Contains(view.HTML, "1 topic") || !strings.Contains(view.HTML, "3 topics") {
		t.Errorf("unit counts missing:\n%s", view.HTML)
	}
}

func TestRenderDefaultUnitHasNoOverviewLink(t *testing.T) {
	rd := newRenderer(t, testHolder(t), false)

	view, err := rd.RenderView(rd.Router().Resolve("/constructor"))
	if err != nil {
		t.Fatalf("RenderView: %v", err)
	}
	if strings.Contains(view.HTML, "overview-link") {
		t.Error("a concept with a default unit has no overview link")
	}
	if !strings.Contains(view.HTML, `data-path="/constructor/home"`) {
		t.Error("expected the canonical unit path")
	}
}

func TestRenderDemoWidgets(t *testing.T) {
	h := testHolder(t)
	rd := newRenderer(t, h, false)
	u, err := h.GetUnit("inheritance", "upcasting")
	if err != nil {
		t.Fatal(err)
	}

	out, err := rd.RenderDemo(u.Demo, u.Demo.Initial())
	if err != nil {
		t.Fatalf("RenderDemo: %v", err)
	}
	for _, want := range []string{
		`<button data-action="previous" data-field="cycle" disabled>Previous</button>`,
		`<button data-action="next" data-field="cycle">Next</button>`,
		`<span class="position">1 / 3</span>`,
		"<strong>Dog</strong>",
		`data-action="select" data-field="example" data-value="dog" class="active"`,
		`data-action="clear" data-field="example"`,
		"Animal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo missing %q:\n%s", want, out)
		}
	}

	st, _ := u.Demo.Apply(u.Demo.Initial(), demo.Action{Kind: demo.Clear, Field: "example"})
	st, _ = u.Demo.Apply(st, demo.Action{Kind: demo.Next, Field: "cycle"})
	out, err = rd.RenderDemo(u.Demo, st)
	if err != nil {
		t.Fatalf("RenderDemo: %v", err)
	}
	if strings.Contains(out, `data-action="clear"`) {
		t.Error("clear button shown with nothing selected")
	}
	if !strings.Contains(out, `<span class="position">2 / 3</span>`) {
		t.Error("stepper did not advance")
	}
}

func TestRenderDemoStaticDisablesControls(t *testing.T) {
	h := testHolder(t)
	rd := newRenderer(t, h, true)
	u, _ := h.GetUnit("inheritance", "upcasting")

	out, err := rd.RenderDemo(u.Demo, u.Demo.Initial())
	if err != nil {
		t.Fatalf("RenderDemo: %v", err)
	}
	if !strings.Contains(out, "demo-note") {
		t.Error("static demo should explain that it needs the live server")
	}
	if !strings.Contains(out, `<button data-action="next" data-field="cycle" disabled>Next</button>`) {
		t.Error("static controls should be disabled")
	}
}

func TestRenderDemoCarAndCalculator(t *testing.T) {
	rd := newRenderer(t, testHolder(t), false)
	spec := &demo.Spec{Car: &demo.CarSpec{}, Calculator: &demo.CalculatorSpec{A: 10, B: 20}}

	st, _ := spec.Apply(spec.Initial(), demo.Action{Kind: demo.Calculate, Field: "calculator"})
	out, err := rd.RenderDemo(spec, st)
	if err != nil {
		t.Fatalf("RenderDemo: %v", err)
	}
	for _, want := range []string{
		demo.MsgCarReady,
		`style="width: 100%"`,
		"calculate(10, 20)</code> = 30",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo missing %q:\n%s", want, out)
		}
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newRenderer(t, testHolder(t), false))

	tests := []struct {
		path   string
		status int
		ctype  string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/inheritance", http.StatusOK, "text/html"},
		{"/inheritance/single", http.StatusOK, "text/html"},
		{"/constructor/", http.StatusOK, "text/html"},
		{"/nosuch", http.StatusNotFound, "text/html"},
		{"/inheritance/nosuch", http.StatusNotFound, "text/html"},
		{"/a/b/c", http.StatusNotFound, "text/html"},
		{"/assets/style.css", http.StatusOK, "text/css"},
		{"/assets/script.js", http.StatusOK, "application/javascript"},
		{"/assets/missing.js", http.StatusNotFound, ""},
		{"/api/resolve?path=/constructor", http.StatusOK, "application/json"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("GET %s: status %d, want %d", tt.path, w.Code, tt.status)
		}
		if tt.ctype != "" && !strings.HasPrefix(w.Header().Get("Content-Type"), tt.ctype) {
			t.Errorf("GET %s: content type %q", tt.path, w.Header().Get("Content-Type"))
		}
	}
}

func TestResolveRoute(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newRenderer(t, testHolder(t), false))

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?path=/constructor", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var nav router.NavigationState
	if err := json.Unmarshal(w.Body.Bytes(), &nav); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if nav.Kind != router.KindUnit || nav.UnitID != "home" || nav.Path != "/constructor/home" {
		t.Errorf("nav = %+v", nav)
	}
}

func TestNotFoundPageKeepsPath(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newRenderer(t, testHolder(t), false))

	req := httptest.NewRequest(http.MethodGet, "/inheritance/nosuch", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "<code>/inheritance/nosuch</code>") {
		t.Error("not-found page should show the requested path")
	}
}

func TestGenerate(t *testing.T) {
	h := testHolder(t)
	outDir := t.TempDir()
	g := NewSiteGenerator(h, newRenderer(t, h, true), outDir)

	count, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// root, 2 concepts, 4 units, 404
	if count != 8 {
		t.Errorf("count = %d, want 8", count)
	}

	for _, rel := range []string{
		"index.html",
		"inheritance/index.html",
		"inheritance/single/index.html",
		"inheritance/multiple/index.html",
		"inheritance/upcasting/index.html",
		"constructor/index.html",
		"constructor/home/index.html",
		"404.html",
		"assets/style.css",
		"assets/script.js",
		"search-index.json",
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	single, _ := os.ReadFile(filepath.Join(outDir, "inheritance", "single", "index.html"))
	for _, want := range []string{
		`href="../../assets/style.css"`,
		`href="../../constructor/index.html"`,
		`data-live="false"`,
	} {
		if !strings.Contains(string(single), want) {
			t.Errorf("single page missing %q", want)
		}
	}

	alias, _ := os.ReadFile(filepath.Join(outDir, "constructor", "index.html"))
	if !strings.Contains(string(alias), `url=home/index.html`) {
		t.Errorf("constructor/index.html should redirect to its default unit:\n%s", alias)
	}

	var docs []search.Document
	data, _ := os.ReadFile(filepath.Join(outDir, "search-index.json"))
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("search index: %v", err)
	}
	if len(docs) != 5 {
		t.Errorf("search index has %d documents, want 5", len(docs))
	}
}

func TestGenerateNeedsStaticRenderer(t *testing.T) {
	h := testHolder(t)
	g := NewSiteGenerator(h, newRenderer(t, h, false), t.TempDir())
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected error for a live renderer")
	}
}

func TestExportHandler(t *testing.T) {
	h := testHolder(t)
	outDir := t.TempDir()
	if _, err := NewSiteGenerator(h, newRenderer(t, h, true), outDir).Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	srv := ExportHandler(outDir)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/inheritance/single/", http.StatusOK},
		{"/assets/style.css", http.StatusOK},
		{"/nosuch/", http.StatusNotFound},
		{"/../../etc/passwd", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("GET %s: status %d, want %d", tt.path, w.Code, tt.status)
		}
	}
}

func TestPaths(t *testing.T) {
	got := strings.Join(Paths(testHolder(t).Load()), " ")
	want := "/ /inheritance /inheritance/single /inheritance/multiple /inheritance/upcasting /constructor /constructor/home"
	if got != want {
		t.Errorf("Paths:\n got %s\nwant %s", got, want)
	}
}
