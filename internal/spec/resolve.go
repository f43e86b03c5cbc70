package spec

import (
	"regexp"
	"strconv"
	"strings"
)

// Query patterns for explicit addressing. A bare numeric pair can never
// collide with CODE.N because area codes are uppercase letters.
var (
	explicitRe = regexp.MustCompile(`^([A-Z]{2,3})\.([0-9]+)$`)
	legacyRe   = regexp.MustCompile(`^([0-9]+)\.([0-9]+)$`)
)

// Resolve maps a free-form query onto exactly one item. The precedence
// order is fixed and load-bearing — it decides whether a terse query
// lands on the currently relevant item instead of an unrelated one
// sharing a substring:
//
//  1. Explicit "CODE.N": exact area-code + position. If the pattern is
//     present but unmatched, resolution stops — no substring fallback.
//  2. Bare "N.M": legacy positional addressing by area index + position.
//  3. With a current task: first incomplete title-substring match inside
//     that task's subtree, depth-first in document order.
//  4. First incomplete title-substring match across the whole document.
//
// Substring matches are case-insensitive and only ever hit incomplete
// items; completed work must be referenced by explicit id.
func (d *Document) Resolve(query string, current *Item) (*Item, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	if m := explicitRe.FindStringSubmatch(query); m != nil {
		pos, _ := strconv.Atoi(m[2])
		for _, area := range d.Areas {
			if area.Code == m[1] {
				if pos >= 1 && pos <= len(area.Items) {
					return area.Items[pos-1], true
				}
				break
			}
		}
		return nil, false
	}

	if m := legacyRe.FindStringSubmatch(query); m != nil {
		areaIdx, _ := strconv.Atoi(m[1])
		pos, _ := strconv.Atoi(m[2])
		if areaIdx >= 1 && areaIdx <= len(d.Areas) {
			area := d.Areas[areaIdx-1]
			if pos >= 1 && pos <= len(area.Items) {
				return area.Items[pos-1], true
			}
		}
		return nil, false
	}

	needle := strings.ToLower(query)

	if current != nil {
		for _, it := range current.Descendants() {
			if titleMatches(it, needle) {
				return it, true
			}
		}
	}

	var found *Item
	d.Walk(func(it *Item) bool {
		if titleMatches(it, needle) {
			found = it
			return false
		}
		return true
	})
	return found, found != nil
}

func titleMatches(it *Item, needle string) bool {
	return !it.Status.Complete() && strings.Contains(strings.ToLower(it.Title), needle)
}
