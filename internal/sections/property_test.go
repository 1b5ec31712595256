package sections

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// titleGen produces titles that survive trimming unchanged.
func titleGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ]{0,20}[A-Za-z0-9]|[A-Za-z0-9]`)
}

// bodyGen produces page bodies that never contain a heading line.
func bodyGen() *rapid.Generator[string] {
	return rapid.StringMatching(`(\n[A-Za-z<>/ ]{0,30}){0,5}\n?`)
}

// docGen builds a document from an optional preamble and canonical pages.
func docGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		var b strings.Builder
		b.WriteString(rapid.SampledFrom([]string{"", "# Notebook\n\n", "intro text\n"}).Draw(t, "preamble"))
		n := rapid.IntRange(0, 6).Draw(t, "pages")
		for i := 0; i < n; i++ {
			if i > 0 || b.Len() > 0 {
				if !strings.HasSuffix(b.String(), "\n") {
					b.WriteString("\n")
				}
			}
			b.WriteString(Heading(titleGen().Draw(t, "title")))
			b.WriteString(bodyGen().Draw(t, "body"))
		}
		return b.String()
	})
}

func TestProperty_ParseReconstructsDocument(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := docGen().Draw(t, "doc")
		pages := Parse(doc)

		var b strings.Builder
		b.WriteString(Preamble(doc))
		prevEnd := len(Preamble(doc))
		for i, p := range pages {
			if p.Start != prevEnd {
				t.Fatalf("page %d starts at %d, expected %d", i, p.Start, prevEnd)
			}
			if p.Start >= p.End && i+1 < len(pages) {
				t.Fatalf("page %d has empty span", i)
			}
			b.WriteString(doc[p.Start:p.HeadingEnd])
			b.WriteString(p.Body)
			prevEnd = p.End
		}
		if b.String() != doc {
			t.Fatalf("reconstruction mismatch:\nwant %q\ngot  %q", doc, b.String())
		}
	})
}

func TestProperty_ReplaceContentRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := docGen().Draw(t, "doc")
		before := Parse(doc)
		if len(before) == 0 {
			t.Skip("no pages")
		}
		target := before[rapid.IntRange(0, len(before)-1).Draw(t, "target")].Title
		body := bodyGen().Draw(t, "newBody")

		out, err := ReplaceContent(doc, target, target, body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		after := Parse(out)
		if len(after) != len(before) {
			t.Fatalf("expected %d pages, got %d", len(before), len(after))
		}

		idx := -1
		for i, p := range before {
			if p.Title == target {
				idx = i
				break
			}
		}
		for i := range before {
			if after[i].Title != before[i].Title {
				t.Fatalf("page %d title changed from %q to %q", i, before[i].Title, after[i].Title)
			}
			if i == idx {
				if strings.TrimSpace(after[i].Body) != strings.TrimSpace(body) {
					t.Fatalf("expected body %q, got %q", strings.TrimSpace(body), after[i].Body)
				}
				continue
			}
			if after[i].Body != before[i].Body {
				t.Fatalf("page %d body changed from %q to %q", i, before[i].Body, after[i].Body)
			}
		}
		if Preamble(out) != Preamble(doc) {
			t.Fatalf("preamble changed from %q to %q", Preamble(doc), Preamble(out))
		}
	})
}

// Headings are generated in canonical "## Title" form; renaming re-emits that
// form, so other spellings of the same heading are normalized instead.
func TestProperty_RenameToSameTitleIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := docGen().Draw(t, "doc")
		pages := Parse(doc)
		if len(pages) == 0 {
			t.Skip("no pages")
		}
		title := pages[rapid.IntRange(0, len(pages)-1).Draw(t, "target")].Title

		out, err := RenamePage(doc, title, title)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != doc {
			t.Fatalf("expected identical document, got %q", out)
		}
	})
}

func TestProperty_InsertAppendsOnePage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := docGen().Draw(t, "doc")
		title := titleGen().Draw(t, "title")

		out := InsertPage(doc, title)
		before, after := Parse(doc), Parse(out)
		if len(after) != len(before)+1 {
			t.Fatalf("expected %d pages, got %d", len(before)+1, len(after))
		}
		last := after[len(after)-1]
		if last.Title != title {
			t.Fatalf("expected last title %q, got %q", title, last.Title)
		}
		for i := range before {
			if after[i].Title != before[i].Title {
				t.Fatalf("page %d title changed", i)
			}
		}
	})
}

func TestProperty_RenameMissingFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := docGen().Draw(t, "doc")
		_, err := RenamePage(doc, "Missing!", "X")
		switch {
		case len(Parse(doc)) == 0:
			if !errors.Is(err, ErrEmptyDocument) {
				t.Fatalf("expected ErrEmptyDocument, got %v", err)
			}
		case !errors.Is(err, ErrPageNotFound):
			t.Fatalf("expected ErrPageNotFound, got %v", err)
		}
	})
}
