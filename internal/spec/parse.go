package spec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Line grammar. Everything that matches none of these is preserved
// verbatim and ignored by the parser.
var (
	// "## SD: Site Design" — a short uppercase code is required.
	areaRe = regexp.MustCompile(`^## ([A-Z]{2,3}): (.+)$`)

	// "- [x] title" at any even indentation depth.
	itemRe = regexp.MustCompile(`^((?:  )*)- \[(.)\] (.+)$`)

	// "**SD.1** Title" — the bold display id on a top-level item line.
	boldIDRe = regexp.MustCompile(`^\*\*([A-Z]{2,3}\.[0-9]+)\*\* (.+)$`)

	// "Story: ..." detail lines attached to the preceding top-level item.
	detailRe = regexp.MustCompile(`^\s+(Story|Requires|Files|Testing): (.+)$`)
)

// Parse converts checklist text into a Document. It never fails:
// malformed constructs are silently dropped from the tree while their
// source lines stay in the document for lossless round-tripping.
// Strictly line-oriented, single pass, no backtracking.
func Parse(text string) *Document {
	doc := &Document{lines: strings.Split(text, "\n")}

	var area *Area
	var stack []*Item // stack[d] = last item seen at depth d
	var lastTop *Item // target for detail lines

	for i, line := range doc.lines {
		if m := areaRe.FindStringSubmatch(line); m != nil {
			area = findOrAddArea(doc, m[1], m[2], i)
			stack = nil
			lastTop = nil
			continue
		}

		if m := itemRe.FindStringSubmatch(line); m != nil {
			if area == nil {
				continue // item before any area header: dropped
			}
			depth := len(m[1]) / 2
			if depth > len(stack) {
				if len(stack) == 0 {
					continue // indented item with no parent chain: dropped
				}
				depth = len(stack) // over-indented: attach to deepest open chain
			}

			content := m[3]
			if depth == 0 {
				if bm := boldIDRe.FindStringSubmatch(content); bm != nil {
					content = bm[2]
				}
			}

			it := &Item{
				ID:     uuid.NewString(),
				Status: glyphStatus(m[2]),
				Depth:  depth,
				line:   i,
			}
			it.Title, it.Description = splitDescription(content)

			if depth == 0 {
				area.Items = append(area.Items, it)
				it.DisplayID = displayID(area.Code, len(area.Items))
				lastTop = it
			} else {
				parent := stack[depth-1]
				it.Parent = parent
				parent.Children = append(parent.Children, it)
			}

			stack = append(stack[:depth], it)
			continue
		}

		if m := detailRe.FindStringSubmatch(line); m != nil && lastTop != nil {
			attachDetail(lastTop, m[1], m[2])
			continue
		}
	}

	return doc
}

// findOrAddArea returns the area for code, creating it on first sight.
// A duplicate header does not start a second area with the same code —
// codes are unique, so later items accumulate into the original.
func findOrAddArea(doc *Document, code, name string, line int) *Area {
	for _, a := range doc.Areas {
		if a.Code == code {
			return a
		}
	}
	a := &Area{Code: code, Name: strings.TrimSpace(name), line: line}
	doc.Areas = append(doc.Areas, a)
	return a
}

func glyphStatus(glyph string) Status {
	if len(glyph) == 1 {
		if s, ok := glyphToStatus[glyph[0]]; ok {
			return s
		}
	}
	return StatusOpen
}

func displayID(code string, n int) string {
	return code + "." + strconv.Itoa(n)
}

// splitDescription separates "Title - trailing description" on the first
// " - " occurrence. The trailing content is stored, not parsed further.
func splitDescription(s string) (title, desc string) {
	if idx := strings.Index(s, " - "); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+3:])
	}
	return strings.TrimSpace(s), ""
}

func attachDetail(it *Item, label, value string) {
	switch label {
	case "Story":
		it.Story = value
	case "Requires":
		it.Requirements = append(it.Requirements, splitList(value)...)
	case "Files":
		it.Files = append(it.Files, splitList(value)...)
	case "Testing":
		it.Testing = append(it.Testing, splitList(value)...)
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
