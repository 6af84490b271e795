package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/router"
	"github.com/ziadkadry99/oopconcepts/internal/search"
)

// handleListConcepts lists the concepts in navbar order.
func (s *Server) handleListConcepts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	concepts := s.holder.Load().Concepts()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d concept(s):\n", len(concepts)))
	for _, c := range concepts {
		sb.WriteString(fmt.Sprintf("\n- %s (%s): %d unit(s)", c.DisplayName, c.ID, c.UnitCount))
		if c.DefaultUnitID != "" {
			sb.WriteString(fmt.Sprintf(", default %s", c.DefaultUnitID))
		}
		if c.Summary != "" {
			sb.WriteString("\n  " + c.Summary)
		}
	}
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListUnits lists one concept's units in sidebar order.
func (s *Server) handleListUnits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conceptID, err := request.RequireString("concept")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: concept"), nil
	}

	units, err := s.holder.Load().ListUnits(conceptID)
	if err != nil {
		return lookupError(err, "concept %q", conceptID), nil
	}
	if len(units) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Concept %q has no units; it shows an overview only.", conceptID)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d unit(s) in %s:\n", len(units), conceptID))
	group := ""
	for _, u := range units {
		if u.Group != group {
			group = u.Group
			if group != "" {
				sb.WriteString(fmt.Sprintf("\n%s:", group))
			}
		}
		indent := "\n- "
		if u.Group != "" {
			indent = "\n  - "
		}
		sb.WriteString(fmt.Sprintf("%s%s (%s) %s", indent, u.Title, u.ID, router.Path(conceptID, u.ID)))
	}
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetUnit returns a unit, the default unit or the overview as markdown.
func (s *Server) handleGetUnit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conceptID, err := request.RequireString("concept")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: concept"), nil
	}
	unitID := request.GetString("unit", "")

	reg := s.holder.Load()
	c, err := reg.GetConcept(conceptID)
	if err != nil {
		return lookupError(err, "concept %q", conceptID), nil
	}

	if unitID == "" {
		u, err := reg.DefaultUnit(conceptID)
		if err != nil {
			return lookupError(err, "concept %q", conceptID), nil
		}
		if u == nil {
			return mcp.NewToolResultText(formatOverview(c)), nil
		}
		return mcp.NewToolResultText(formatUnit(c, u)), nil
	}

	u, err := reg.GetUnit(conceptID, unitID)
	if err != nil {
		return lookupError(err, "unit %q in concept %q", unitID, conceptID), nil
	}
	return mcp.NewToolResultText(formatUnit(c, u)), nil
}

// handleSearchContent searches the content index.
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.search == nil {
		return mcp.NewToolResultError("search is not available"), nil
	}

	limit := request.GetInt("limit", search.DefaultLimit)
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	results, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleResolvePath maps a site path onto the view it shows.
func (s *Server) handleResolvePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	nav := s.router.Resolve(path)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind: %s\nPath: %s\n", nav.Kind, nav.Path))
	if nav.ConceptID != "" {
		sb.WriteString(fmt.Sprintf("Concept: %s\n", nav.ConceptID))
	}
	if nav.UnitID != "" {
		sb.WriteString(fmt.Sprintf("Unit: %s\n", nav.UnitID))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func lookupError(err error, format string, args ...any) *mcp.CallToolResult {
	if errors.Is(err, registry.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No "+format+" found. Use list_concepts to see what exists.", args...))
	}
	return mcp.NewToolResultError(err.Error())
}

func formatOverview(c *registry.Concept) string {
	var sb strings.Builder
	title := c.DisplayName
	body := c.Summary
	if c.Overview != nil {
		title, body = c.Overview.Title, c.Overview.Body
	}
	sb.WriteString(fmt.Sprintf("# %s\n\nPath: %s\n", title, router.Path(c.ID, "")))
	if body != "" {
		sb.WriteString("\n" + strings.TrimSpace(body) + "\n")
	}
	return sb.String()
}

// formatUnit renders a unit as markdown for AI agent consumption.
func formatUnit(c *registry.Concept, u *registry.ContentUnit) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\nConcept: %s\nPath: %s\n", u.Title, c.DisplayName, router.Path(c.ID, u.ID)))
	if u.Summary != "" {
		sb.WriteString("\n" + u.Summary + "\n")
	}

	for _, sec := range u.Sections {
		if sec.Heading != "" {
			sb.WriteString("\n## " + sec.Heading + "\n")
		}
		if sec.Text != "" {
			sb.WriteString("\n" + strings.TrimSpace(sec.Text) + "\n")
		}
		if sec.Code != nil {
			if sec.Code.Caption != "" {
				sb.WriteString("\n" + sec.Code.Caption + ":\n")
			}
			sb.WriteString("\n" + fenced(sec.Code.Language, sec.Code.Source))
		}
	}

	if u.HasDemo() {
		sb.WriteString("\n## Interactive demo\n")
		writeDemo(&sb, u.Demo)
	}
	return sb.String()
}

// writeDemo lists the demo's text. The live behavior needs the site.
func writeDemo(sb *strings.Builder, d *demo.Spec) {
	for _, st := range d.Steppers {
		sb.WriteString(fmt.Sprintf("\n%s:\n", label(st.Label, st.Name)))
		for i, step := range st.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s", i+1, step.Title))
			if step.Detail != "" {
				sb.WriteString(": " + oneLine(step.Detail))
			}
			sb.WriteString("\n")
		}
	}
	for _, sel := range d.Selectors {
		sb.WriteString(fmt.Sprintf("\n%s:\n", label(sel.Label, sel.Name)))
		for _, opt := range sel.Options {
			sb.WriteString("- " + opt.Label)
			if opt.Detail != "" {
				sb.WriteString(": " + oneLine(opt.Detail))
			}
			sb.WriteString("\n")
			if opt.Code != "" {
				sb.WriteString(fenced("", opt.Code))
			}
		}
	}
	for _, tg := range d.Toggles {
		if tg.Content != "" {
			sb.WriteString(fmt.Sprintf("\n%s:\n\n%s\n", label(tg.Label, tg.Name), strings.TrimSpace(tg.Content)))
		}
	}
	for _, rv := range d.Reveals {
		sb.WriteString(fmt.Sprintf("\n%s:\n", label(rv.Label, rv.Name)))
		for _, item := range rv.Items {
			sb.WriteString("- " + item + "\n")
		}
	}
}

func label(l, name string) string {
	if l != "" {
		return l
	}
	return name
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fenced wraps source in a code fence longer than any backtick run inside it.
func fenced(language, source string) string {
	longest, run := 0, 0
	for _, r := range source {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	marker := strings.Repeat("`", max(3, longest+1))
	return marker + language + "\n" + strings.TrimRight(source, "\n") + "\n" + marker + "\n"
}

// formatSearchResults converts search results into text for AI agent
// consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Title))
		sb.WriteString(fmt.Sprintf("Concept: %s\n", r.ConceptName))
		sb.WriteString(fmt.Sprintf("Path: %s\n", r.Path))
		sb.WriteString(fmt.Sprintf("Score: %d\n", r.Score))
		if r.Summary != "" {
			sb.WriteString("\n" + r.Summary + "\n")
		}
	}

	return sb.String()
}
