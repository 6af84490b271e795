package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
)

// SidebarTree is a node of a concept's sidebar: the root, a group heading or
// a unit link.
type SidebarTree struct {
	Title    string
	UnitID   string // set on unit leaves
	IsGroup  bool
	Children []*SidebarTree
}

// BuildTree arranges units in sidebar order. Units sharing a group are
// nested under one heading placed where the group first appears.
func BuildTree(conceptID string, units []registry.UnitSummary) *SidebarTree {
	root := &SidebarTree{Title: conceptID}
	groups := make(map[string]*SidebarTree)

	for _, u := range units {
		leaf := &SidebarTree{Title: u.Title, UnitID: u.ID}
		if u.Group == "" {
			root.Children = append(root.Children, leaf)
			continue
		}
		g, ok := groups[u.Group]
		if !ok {
			g = &SidebarTree{Title: u.Group, IsGroup: true}
			groups[u.Group] = g
			root.Children = append(root.Children, g)
		}
		g.Children = append(g.Children, leaf)
	}
	return root
}

// contains reports whether the subtree holds the given unit.
func (t *SidebarTree) contains(unitID string) bool {
	if t.UnitID != "" && t.UnitID == unitID {
		return true
	}
	for _, c := range t.Children {
		if c.contains(unitID) {
			return true
		}
	}
	return false
}

// ToHTML renders the tree as nested <ul><li> HTML. A group is expanded when
// it holds the active unit, or when no unit is active.
func (t *SidebarTree) ToHTML(activeUnit string, href func(unitID string) string) string {
	var b strings.Builder
	renderChildren(&b, t, activeUnit, href)
	return b.String()
}

func renderChildren(b *strings.Builder, node *SidebarTree, activeUnit string, href func(string) string) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsGroup {
			expanded := ""
			if activeUnit == "" || child.contains(activeUnit) {
				expanded = " expanded"
			}
			fmt.Fprintf(b, `<li class="group%s"><span class="group-toggle">%s</span>`+"\n",
				expanded, template.HTMLEscapeString(child.Title))
			renderChildren(b, child, activeUnit, href)
			b.WriteString("</li>\n")
			continue
		}
		activeClass := ""
		if child.UnitID == activeUnit {
			activeClass = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="unit"><a href="%s" data-nav%s>%s</a></li>`+"\n",
			template.HTMLEscapeString(href(child.UnitID)), activeClass, template.HTMLEscapeString(child.Title))
	}
	b.WriteString("</ul>\n")
}
