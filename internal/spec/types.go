// Package spec models the checklist document: a tree of areas and items
// parsed from markdown-ish text, with lossless serialization back to it.
//
// The document is the source of truth. It is re-parsed on every logical
// transaction and written back after mutations — nothing in this package
// caches a tree across calls.
package spec

import (
	"fmt"
	"strings"
)

// --- Item status enum ---

// Status is the completion state of an item, mapped to a checkbox glyph.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusSkipped    Status = "skipped"
)

// glyphToStatus maps the character inside [ ] to a status.
// Anything not listed here defaults to open.
var glyphToStatus = map[byte]Status{
	' ': StatusOpen,
	'~': StatusInProgress,
	'x': StatusDone,
	'-': StatusSkipped,
}

// statusToGlyph is the inverse mapping used for writeback.
var statusToGlyph = map[Status]byte{
	StatusOpen:       ' ',
	StatusInProgress: '~',
	StatusDone:       'x',
	StatusSkipped:    '-',
}

// Complete reports whether the status counts as finished work.
func (s Status) Complete() bool {
	return s == StatusDone || s == StatusSkipped
}

// --- Core data structures ---

// Item is a unit of work. Top-level items carry a display id (CODE.N);
// children are addressed by title or position relative to their parent.
type Item struct {
	ID           string  // internal id, regenerated per parse
	DisplayID    string  // "SD.1" for top-level items, empty for children
	Title        string
	Status       Status
	Description  string   // trailing " - " text on the item line
	Story        string   // Story: detail line
	Requirements []string // Requires: detail lines, semicolon-separated
	Files        []string // Files: detail lines
	Testing      []string // Testing: detail lines
	Children     []*Item
	Parent       *Item
	Depth        int

	line int // index into Document.lines
}

// Area is a top-level grouping of items identified by a short code.
type Area struct {
	Code  string
	Name  string
	Items []*Item

	line int
}

// Document is the parsed checklist. It keeps every source line verbatim
// so that serialization round-trips unrecognized content byte-for-byte.
type Document struct {
	Areas []*Area

	lines []string
}

// ItemRef is a durable reference to an item that survives re-parsing:
// area code plus the 1-based position path from the area root down.
type ItemRef struct {
	Area  string `json:"area"`
	Path  []int  `json:"path"`
	Title string `json:"title"`
}

// DisplayID renders the reference in CODE.N form for the top-level
// position, with child positions dotted on after it.
func (r ItemRef) DisplayID() string {
	var b strings.Builder
	b.WriteString(r.Area)
	for _, n := range r.Path {
		fmt.Fprintf(&b, ".%d", n)
	}
	return b.String()
}

// Key is a stable identifier for keying stores (handover notes, ledger).
func (r ItemRef) Key() string {
	return r.DisplayID()
}

// --- Tree traversal ---

// Walk visits every item in document order, depth-first, parents before
// children. Returning false from fn stops the walk.
func (d *Document) Walk(fn func(*Item) bool) {
	for _, area := range d.Areas {
		if !walkItems(area.Items, fn) {
			return
		}
	}
}

func walkItems(items []*Item, fn func(*Item) bool) bool {
	for _, it := range items {
		if !fn(it) {
			return false
		}
		if !walkItems(it.Children, fn) {
			return false
		}
	}
	return true
}

// Descendants returns every item below it, depth-first in document order.
func (it *Item) Descendants() []*Item {
	var out []*Item
	walkItems(it.Children, func(child *Item) bool {
		out = append(out, child)
		return true
	})
	return out
}

// Incomplete returns the titles of open or in-progress descendants of it,
// depth-first in document order. An empty result means the item may be
// completed without violating the completion invariant.
func (it *Item) Incomplete() []string {
	var titles []string
	for _, d := range it.Descendants() {
		if !d.Status.Complete() {
			titles = append(titles, d.Title)
		}
	}
	return titles
}

// Root follows the parent chain to the top-level item that owns it.
func (it *Item) Root() *Item {
	cur := it
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// --- Reference resolution ---

// Ref computes the durable reference for an item by walking its parent
// chain up to the owning area.
func (d *Document) Ref(it *Item) ItemRef {
	var chain []*Item
	for cur := it; cur != nil; cur = cur.Parent {
		chain = append([]*Item{cur}, chain...)
	}

	ref := ItemRef{Title: it.Title}
	for _, area := range d.Areas {
		for i, top := range area.Items {
			if top == chain[0] {
				ref.Area = area.Code
				ref.Path = append(ref.Path, i+1)
			}
		}
	}
	if ref.Area == "" {
		return ref
	}

	parent := chain[0]
	for _, link := range chain[1:] {
		for i, child := range parent.Children {
			if child == link {
				ref.Path = append(ref.Path, i+1)
				break
			}
		}
		parent = link
	}
	return ref
}

// Lookup finds the item a reference points at in this document, or nil
// if the positions no longer exist.
func (d *Document) Lookup(ref ItemRef) *Item {
	var area *Area
	for _, a := range d.Areas {
		if a.Code == ref.Area {
			area = a
			break
		}
	}
	if area == nil || len(ref.Path) == 0 {
		return nil
	}

	items := area.Items
	var it *Item
	for _, pos := range ref.Path {
		if pos < 1 || pos > len(items) {
			return nil
		}
		it = items[pos-1]
		items = it.Children
	}
	return it
}

// NextOpen returns the first open item in document order, skipping the
// subtree rooted at exclude when given. Used for "next recommended task"
// suggestions after a completion.
func (d *Document) NextOpen(exclude *Item) *Item {
	var found *Item
	d.Walk(func(it *Item) bool {
		if exclude != nil && (it == exclude || it.Root() == exclude) {
			return true
		}
		if it.Status == StatusOpen {
			found = it
			return false
		}
		return true
	})
	return found
}

// --- Mutation & serialization ---

// SetStatus updates an item's status and rewrites the glyph on its
// source line. The rest of the line is untouched.
func (d *Document) SetStatus(it *Item, status Status) {
	it.Status = status
	if it.line < 0 || it.line >= len(d.lines) {
		return
	}
	line := d.lines[it.line]
	open := strings.Index(line, "- [")
	if open < 0 || open+3 >= len(line) {
		return
	}
	b := []byte(line)
	b[open+3] = statusToGlyph[status]
	d.lines[it.line] = string(b)
}

// Serialize reproduces the document text. Recognized lines reflect any
// status mutations; everything else is emitted verbatim.
func (d *Document) Serialize() string {
	return strings.Join(d.lines, "\n")
}
