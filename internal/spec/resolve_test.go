package spec

import "testing"

const resolveDoc = `## SD: Site Design
- [ ] **SD.1** Landing page
  - [ ] Hero banner
  - [ ] Signup form
- [ ] **SD.2** Contact form
- [x] **SD.3** Old form layout

## OPS: Operations
- [ ] **OPS.1** Deploy form service
`

// --- Rule 1: explicit CODE.N ---

func TestResolve_ExplicitID(t *testing.T) {
	doc := Parse(resolveDoc)
	it, ok := doc.Resolve("SD.2", nil)
	if !ok || it.Title != "Contact form" {
		t.Fatalf("SD.2 resolved to %+v", it)
	}
}

func TestResolve_ExplicitIDReachesDoneItems(t *testing.T) {
	doc := Parse(resolveDoc)
	it, ok := doc.Resolve("SD.3", nil)
	if !ok || it.Title != "Old form layout" {
		t.Fatalf("SD.3 should resolve even though done, got %+v", it)
	}
}

func TestResolve_ExplicitIDMissNoFallback(t *testing.T) {
	doc := Parse(resolveDoc)
	// "SD.9" matches the explicit pattern; position 9 does not exist.
	// An item titled to contain "SD.9" must NOT be found via substring.
	if _, ok := doc.Resolve("SD.9", nil); ok {
		t.Fatal("unmatched explicit id must be NotFound, not a substring guess")
	}
}

func TestResolve_ExplicitBeatsTitleCollision(t *testing.T) {
	text := "## SD: Design\n- [ ] **SD.1** Implement SD.2 parser\n- [ ] **SD.2** Second item\n"
	doc := Parse(text)
	it, ok := doc.Resolve("SD.2", nil)
	if !ok || it.Title != "Second item" {
		t.Fatalf("SD.2 resolved via rule 1 to %+v, want positional match", it)
	}
}

func TestResolve_UnknownAreaCodeNoFallback(t *testing.T) {
	doc := Parse(resolveDoc)
	if _, ok := doc.Resolve("ZZ.1", nil); ok {
		t.Fatal("unknown area code must be NotFound")
	}
}

// --- Rule 2: legacy positional pair ---

func TestResolve_LegacyPair(t *testing.T) {
	doc := Parse(resolveDoc)
	it, ok := doc.Resolve("2.1", nil)
	if !ok || it.Title != "Deploy form service" {
		t.Fatalf("2.1 resolved to %+v, want OPS area item 1", it)
	}
}

func TestResolve_LegacyPairOutOfRange(t *testing.T) {
	doc := Parse(resolveDoc)
	if _, ok := doc.Resolve("9.1", nil); ok {
		t.Fatal("out-of-range legacy pair must be NotFound")
	}
}

// --- Rule 3: current-task subtree before global ---

func TestResolve_CurrentTaskScopeWins(t *testing.T) {
	doc := Parse(resolveDoc)
	landing := doc.Areas[0].Items[0]

	// "form" appears in Signup form (inside SD.1), Contact form (SD.2),
	// Old form layout (SD.3, done) and Deploy form service (OPS.1).
	it, ok := doc.Resolve("form", landing)
	if !ok || it.Title != "Signup form" {
		t.Fatalf("scoped resolve = %+v, want Signup form", it)
	}
}

func TestResolve_FallsThroughToGlobalWhenScopeMisses(t *testing.T) {
	doc := Parse(resolveDoc)
	landing := doc.Areas[0].Items[0]

	it, ok := doc.Resolve("deploy", landing)
	if !ok || it.Title != "Deploy form service" {
		t.Fatalf("resolve = %+v, want global match", it)
	}
}

// --- Rule 4: global document order ---

func TestResolve_GlobalFirstMatchWins(t *testing.T) {
	doc := Parse(resolveDoc)
	it, ok := doc.Resolve("form", nil)
	if !ok || it.Title != "Signup form" {
		t.Fatalf("global resolve = %+v, want first incomplete in doc order", it)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	doc := Parse(resolveDoc)
	it, ok := doc.Resolve("LANDING", nil)
	if !ok || it.Title != "Landing page" {
		t.Fatalf("case-insensitive resolve = %+v", it)
	}
}

func TestResolve_SkipsCompletedItems(t *testing.T) {
	doc := Parse(resolveDoc)
	// "Old form layout" is the only item containing "old" and it is done.
	if _, ok := doc.Resolve("old", nil); ok {
		t.Fatal("done items must not resolve via substring")
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	doc := Parse(resolveDoc)
	if _, ok := doc.Resolve("   ", nil); ok {
		t.Fatal("blank query must be NotFound")
	}
}
