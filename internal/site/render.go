// Package site renders the concept catalog as HTML, both for the live server
// and for the static export.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// DefaultHighlightStyle is the chroma style used for code samples.
const DefaultHighlightStyle = "github"

// DefaultSiteTitle is shown in the navbar when no title is configured.
const DefaultSiteTitle = "OOP Concepts"

// Options configure a Renderer.
type Options struct {
	SiteTitle      string
	HighlightStyle string
	// CodeLanguage highlights demo snippets, which carry no language.
	CodeLanguage string
	// Static renders links to exported index.html files and disables demo
	// controls.
	Static bool
}

// ValidStyle reports whether name is a registered chroma style.
func ValidStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Renderer turns navigation states into HTML. It reads the registry through
// the holder on every call, so a reload is picked up immediately.
type Renderer struct {
	holder *registry.Holder
	router *router.Router
	md     goldmark.Markdown
	page   *template.Template
	views  *template.Template
	opts   Options
}

// View is a rendered #view fragment.
type View struct {
	Title string
	HTML  string
}

// NewRenderer parses the templates and configures goldmark.
func NewRenderer(h *registry.Holder, opts Options) (*Renderer, error) {
	if opts.SiteTitle == "" {
		opts.SiteTitle = DefaultSiteTitle
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}
	if !ValidStyle(opts.HighlightStyle) {
		return nil, fmt.Errorf("unknown highlight style %q", opts.HighlightStyle)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.HighlightStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	views, err := template.New("views").Parse(viewTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}

	return &Renderer{
		holder: h,
		router: router.New(h),
		md:     md,
		page:   page,
		views:  views,
		opts:   opts,
	}, nil
}

// Router returns the router the renderer resolves paths with.
func (r *Renderer) Router() *router.Router { return r.router }

// Static reports whether the renderer produces export links.
func (r *Renderer) Static() bool { return r.opts.Static }

// pageData holds the data passed to the page template.
type pageData struct {
	Title     string
	SiteTitle string
	Live      bool
	Base      string
	Assets    string
	HomeHref  string
	Concepts  []conceptLink
	View      template.HTML
}

type conceptLink struct {
	ID        string
	Name      string
	Summary   string
	UnitCount int
	Href      string
	Active    bool
}

// RenderPage writes the full HTML document for nav.
func (r *Renderer) RenderPage(w io.Writer, nav router.NavigationState) error {
	l := r.linker(nav)
	view, err := r.renderView(nav, l)
	if err != nil {
		return err
	}
	data := pageData{
		Title:     view.Title,
		SiteTitle: r.opts.SiteTitle,
		Live:      !r.opts.Static,
		Base:      l.base,
		Assets:    l.assets(),
		HomeHref:  l.href("/"),
		Concepts:  r.conceptLinks(nav, l),
		View:      template.HTML(view.HTML),
	}
	if err := r.page.Execute(w, data); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// RenderView renders the #view fragment for nav with live links.
func (r *Renderer) RenderView(nav router.NavigationState) (View, error) {
	return r.renderView(nav, r.linker(nav))
}

// PageTitle returns the document title for nav.
func (r *Renderer) PageTitle(nav router.NavigationState) string {
	return r.titleFor(nav) + " - " + r.opts.SiteTitle
}

type viewData struct {
	Nav     router.NavigationState
	Sidebar template.HTML
	Body    template.HTML
}

func (r *Renderer) renderView(nav router.NavigationState, l linker) (View, error) {
	reg := r.holder.Load()

	var (
		body    template.HTML
		sidebar string
		err     error
	)
	switch nav.Kind {
	case router.KindWelcome:
		body, err = r.welcome(reg, nav, l)
		sidebar = conceptSidebar(reg, l)
	case router.KindOverview:
		body, err = r.overview(reg, nav, l)
		sidebar = r.unitSidebar(reg, nav, l)
	case router.KindUnit:
		body, err = r.unit(reg, nav, l)
		sidebar = r.unitSidebar(reg, nav, l)
	default:
		body, err = r.notFound(nav, l)
		sidebar = conceptSidebar(reg, l)
	}
	if errors.Is(err, registry.ErrNotFound) {
		// The registry was swapped between resolve and render.
		nav = router.NavigationState{Kind: router.KindNotFound, Path: nav.Path}
		body, err = r.notFound(nav, l)
		sidebar = conceptSidebar(reg, l)
	}
	if err != nil {
		return View{}, err
	}

	out, err := r.execute("view", viewData{Nav: nav, Sidebar: template.HTML(sidebar), Body: body})
	if err != nil {
		return View{}, err
	}
	return View{Title: r.PageTitle(nav), HTML: string(out)}, nil
}

func (r *Renderer) titleFor(nav router.NavigationState) string {
	reg := r.holder.Load()
	switch nav.Kind {
	case router.KindWelcome:
		return reg.Welcome().Title
	case router.KindOverview:
		c, err := reg.GetConcept(nav.ConceptID)
		if err != nil {
			break
		}
		if c.Overview != nil && c.Overview.Title != "" {
			return c.Overview.Title
		}
		return c.DisplayName
	case router.KindUnit:
		if u, err := reg.GetUnit(nav.ConceptID, nav.UnitID); err == nil {
			return u.Title
		}
	}
	return "Page not found"
}

func (r *Renderer) welcome(reg *registry.Registry, nav router.NavigationState, l linker) (template.HTML, error) {
	w := reg.Welcome()
	return r.execute("welcome", struct {
		Title    string
		Body     template.HTML
		Concepts []conceptLink
	}{w.Title, r.Markdown(w.Body), r.conceptLinks(nav, l)})
}

type unitLink struct {
	Title string
	Group string
	Href  string
}

func (r *Renderer) overview(reg *registry.Registry, nav router.NavigationState, l linker) (template.HTML, error) {
	c, err := reg.GetConcept(nav.ConceptID)
	if err != nil {
		return "", err
	}
	title, text := c.DisplayName, c.Summary
	if c.Overview != nil {
		title, text = c.Overview.Title, c.Overview.Body
	}
	var units []unitLink
	for _, u := range c.Units {
		units = append(units, unitLink{Title: u.Title, Group: u.Group, Href: l.href(router.Path(c.ID, u.ID))})
	}
	return r.execute("overview", struct {
		ConceptName string
		Title       string
		Body        template.HTML
		Units       []unitLink
	}{c.DisplayName, title, r.Markdown(text), units})
}

type sectionView struct {
	Heading string
	Text    template.HTML
	Caption string
	Code    template.HTML
}

func (r *Renderer) unit(reg *registry.Registry, nav router.NavigationState, l linker) (template.HTML, error) {
	c, err := reg.GetConcept(nav.ConceptID)
	if err != nil {
		return "", err
	}
	u, err := reg.GetUnit(nav.ConceptID, nav.UnitID)
	if err != nil {
		return "", err
	}

	sections := make([]sectionView, 0, len(u.Sections))
	for _, s := range u.Sections {
		sv := sectionView{Heading: s.Heading, Text: r.Markdown(s.Text)}
		if s.Code != nil {
			sv.Caption = s.Code.Caption
			sv.Code = r.Code(s.Code.Language, s.Code.Source)
		}
		sections = append(sections, sv)
	}

	var demoHTML template.HTML
	if u.HasDemo() {
		out, err := r.RenderDemo(u.Demo, u.Demo.Initial())
		if err != nil {
			return "", err
		}
		demoHTML = template.HTML(out)
	}

	return r.execute("unit", struct {
		ConceptName string
		ConceptHref string
		Group       string
		Title       string
		Summary     string
		Sections    []sectionView
		Demo        template.HTML
	}{c.DisplayName, l.href(router.Path(c.ID, "")), u.Group, u.Title, u.Summary, sections, demoHTML})
}

func (r *Renderer) notFound(nav router.NavigationState, l linker) (template.HTML, error) {
	return r.execute("notfound", struct {
		Path     string
		HomeHref string
	}{nav.Path, l.href("/")})
}

func (r *Renderer) conceptLinks(nav router.NavigationState, l linker) []conceptLink {
	concepts := r.holder.Load().Concepts()
	links := make([]conceptLink, 0, len(concepts))
	for _, c := range concepts {
		links = append(links, conceptLink{
			ID:        c.ID,
			Name:      c.DisplayName,
			Summary:   c.Summary,
			UnitCount: c.UnitCount,
			Href:      l.href(router.Path(c.ID, "")),
			Active:    c.ID == nav.ConceptID,
		})
	}
	return links
}

func (r *Renderer) unitSidebar(reg *registry.Registry, nav router.NavigationState, l linker) string {
	c, err := reg.GetConcept(nav.ConceptID)
	if err != nil {
		return conceptSidebar(reg, l)
	}
	units, _ := reg.ListUnits(c.ID)
	tree := BuildTree(c.ID, units)

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="sidebar-heading">%s</div>`+"\n", template.HTMLEscapeString(c.DisplayName))
	if c.DefaultUnitID == "" {
		active := ""
		if nav.Kind == router.KindOverview {
			active = ` class="active"`
		}
		fmt.Fprintf(&b, `<ul><li class="unit overview-link"><a href="%s" data-nav%s>Overview</a></li></ul>`+"\n",
			template.HTMLEscapeString(l.href(router.Path(c.ID, ""))), active)
	}
	b.WriteString(tree.ToHTML(nav.UnitID, func(unitID string) string {
		return l.href(router.Path(c.ID, unitID))
	}))
	return b.String()
}

func conceptSidebar(reg *registry.Registry, l linker) string {
	var b strings.Builder
	b.WriteString(`<div class="sidebar-heading">Concepts</div>` + "\n<ul>\n")
	for _, c := range reg.Concepts() {
		fmt.Fprintf(&b, `<li class="unit"><a href="%s" data-nav>%s</a></li>`+"\n",
			template.HTMLEscapeString(l.href(router.Path(c.ID, ""))), template.HTMLEscapeString(c.DisplayName))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.views.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Markdown renders trusted content markdown. Rendering errors fall back to
// the escaped source.
func (r *Renderer) Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(buf.String())
}

var languageName = regexp.MustCompile(`^[A-Za-z0-9_+#.-]*$`)

// Code renders a highlighted code block. The source is displayed verbatim.
func (r *Renderer) Code(language, source string) template.HTML {
	if source == "" {
		return ""
	}
	if !languageName.MatchString(language) {
		language = ""
	}
	return r.Markdown(fence(language, source))
}

// fence wraps source in a fenced block whose fence is longer than any
// backtick run inside it.
func fence(language, source string) string {
	marker := "```"
	for strings.Contains(source, marker) {
		marker += "`"
	}
	return marker + language + "\n" + strings.TrimRight(source, "\n") + "\n" + marker + "\n"
}
