// Package sections segments a notebook document into pages and rewrites it.
//
// A page starts at a level-2 heading line ("## Title") and runs until the
// next such line or the end of the document. Every function here is pure:
// it takes the full document text and returns values or a new document,
// recomputing page boundaries on each call.
package sections

import (
	"regexp"
	"strings"
	"unicode"
)

// headingRE matches a level-2 heading line. `.` stops at '\n' and `$` is
// line-anchored, so the match never includes the line terminator.
var headingRE = regexp.MustCompile(`(?m)^##[ \t]+(.*)$`)

// DefaultTitle heads a document bootstrapped from empty text.
const DefaultTitle = "Notebook"

// PlaceholderBody is the body of a freshly inserted page.
const PlaceholderBody = "<p><em>New page.</em></p>"

// Page is one titled region of a document. Offsets are byte offsets into the
// document the page was parsed from and are only valid for that text.
type Page struct {
	Title string // Heading text, trimmed
	Body  string // Text after the heading line up to End

	Start      int // First byte of the heading line
	HeadingEnd int // End of the heading line, before its terminator
	End        int // Start of the next heading, or len(doc)
}

// Heading returns the heading line for title. The title is used verbatim.
func Heading(title string) string {
	return "## " + title
}

// Parse returns the pages of doc in document order. A document without any
// heading yields no pages.
func Parse(doc string) []Page {
	matches := headingRE.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return nil
	}

	pages := make([]Page, 0, len(matches))
	for i, m := range matches {
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		pages = append(pages, Page{
			Title:      strings.TrimSpace(doc[m[2]:m[3]]),
			Body:       doc[m[1]:end],
			Start:      m[0],
			HeadingEnd: m[1],
			End:        end,
		})
	}
	return pages
}

// Preamble returns the text before the first page heading. It is the whole
// document when there are no pages.
func Preamble(doc string) string {
	loc := headingRE.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[0]]
}

// Titles returns page titles in document order.
func Titles(doc string) []string {
	pages := Parse(doc)
	titles := make([]string, 0, len(pages))
	for _, p := range pages {
		titles = append(titles, p.Title)
	}
	return titles
}

// FindByTitle returns the first page whose title equals title.
func FindByTitle(doc, title string) (Page, error) {
	if p, ok := first(Parse(doc), title); ok {
		return p, nil
	}
	return Page{}, notFound(title, ErrNotFound)
}

// ReplaceContent rewrites the first page titled oldTitle with newTitle and
// newBody. newBody is trimmed of surrounding whitespace; newTitle is not.
func ReplaceContent(doc, oldTitle, newTitle, newBody string) (string, error) {
	p, err := locate(doc, oldTitle)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(doc) - (p.End - p.Start) + len(newTitle) + len(newBody) + 8)
	b.WriteString(doc[:p.Start])
	b.WriteString(Heading(newTitle))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(newBody))
	b.WriteString("\n")
	b.WriteString(doc[p.End:])
	return b.String(), nil
}

// InsertPage appends a placeholder page titled newTitle. A blank document
// is bootstrapped with a top-level DefaultTitle heading first.
func InsertPage(doc, newTitle string) string {
	stub := "\n\n" + Heading(newTitle) + "\n\n" + PlaceholderBody + "\n"
	if strings.TrimSpace(doc) == "" {
		return "# " + DefaultTitle + "\n\n" + stub
	}
	return strings.TrimRightFunc(doc, unicode.IsSpace) + stub
}

// RenamePage rewrites the heading line of the first page titled oldTitle.
// The body and all other pages are left untouched.
func RenamePage(doc, oldTitle, newTitle string) (string, error) {
	p, err := locate(doc, oldTitle)
	if err != nil {
		return "", err
	}
	return doc[:p.Start] + Heading(newTitle) + doc[p.HeadingEnd:], nil
}

// locate resolves title for a mutation, distinguishing an empty document
// from a missing page.
func locate(doc, title string) (Page, error) {
	pages := Parse(doc)
	if len(pages) == 0 {
		return Page{}, ErrEmptyDocument
	}
	if p, ok := first(pages, title); ok {
		return p, nil
	}
	return Page{}, notFound(title, ErrPageNotFound)
}

func first(pages []Page, title string) (Page, bool) {
	for _, p := range pages {
		if p.Title == title {
			return p, true
		}
	}
	return Page{}, false
}
