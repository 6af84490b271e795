package registry

import "github.com/ziadkadry99/oopconcepts/internal/demo"

// Welcome is the site-wide landing view shown at the root path.
type Welcome struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"` // markdown
}

// Concept is a top-level topic owning an ordered list of content units.
type Concept struct {
	ID            string         `yaml:"id" json:"id"`
	DisplayName   string         `yaml:"display_name" json:"display_name"`
	Order         int            `yaml:"order" json:"order"`
	Summary       string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	DefaultUnitID string         `yaml:"default_unit,omitempty" json:"default_unit,omitempty"`
	Overview      *Overview      `yaml:"overview,omitempty" json:"overview,omitempty"`
	Units         []*ContentUnit `yaml:"units,omitempty" json:"units,omitempty"`
}

// Overview is rendered for a concept path when no default unit is declared.
type Overview struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"` // markdown
}

// ContentUnit is one navigable page: prose, static code samples and an
// optional demo.
type ContentUnit struct {
	ID       string     `yaml:"id" json:"id"`
	Title    string     `yaml:"title" json:"title"`
	Group    string     `yaml:"group,omitempty" json:"group,omitempty"` // sidebar sub-heading
	Summary  string     `yaml:"summary,omitempty" json:"summary,omitempty"`
	Sections []Section  `yaml:"sections,omitempty" json:"sections,omitempty"`
	Demo     *demo.Spec `yaml:"demo,omitempty" json:"demo,omitempty"`
}

// Section is a block of markdown prose, a code sample, or both.
type Section struct {
	Heading string      `yaml:"heading,omitempty" json:"heading,omitempty"`
	Text    string      `yaml:"text,omitempty" json:"text,omitempty"`
	Code    *CodeSample `yaml:"code,omitempty" json:"code,omitempty"`
}

// CodeSample is displayed verbatim. It is never parsed or executed. File,
// when set, names a sample file in the content source that the loader reads
// into Source.
type CodeSample struct {
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	Caption  string `yaml:"caption,omitempty" json:"caption,omitempty"`
	Source   string `yaml:"source,omitempty" json:"source"`
	File     string `yaml:"file,omitempty" json:"-"`
}

// UnitSummary is a sidebar entry.
type UnitSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Group string `json:"group,omitempty"`
}

// ConceptSummary is a navbar entry.
type ConceptSummary struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Summary       string `json:"summary,omitempty"`
	DefaultUnitID string `json:"default_unit,omitempty"`
	UnitCount     int    `json:"unit_count"`
}

// HasDemo reports whether the unit declares any interactive fields.
func (u *ContentUnit) HasDemo() bool { return !u.Demo.Empty() }
