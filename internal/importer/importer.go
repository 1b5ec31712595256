// Package importer turns external files into notebook page bodies.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/doctree"
)

// Parser converts raw file bytes into an outline.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Tree, error)
}

// Options tune individual parsers.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists the file extensions that can be imported.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the parser for filename's extension.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupported reports whether filename can be imported.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Page is an imported file ready to be written as a notebook page.
type Page struct {
	Title string
	Body  string
}

// Import parses data and renders it as a page. An empty title falls back to
// the document's own title.
func Import(data []byte, filename, title string, opts Options) (Page, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return Page{}, err
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return Page{}, err
	}
	if tree.Empty() {
		return Page{}, fmt.Errorf("%s: no importable content", filename)
	}
	if title = strings.TrimSpace(title); title == "" {
		title = strings.TrimSpace(tree.Title)
	}
	return Page{Title: title, Body: ToHTML(tree)}, nil
}

// baseName strips the directory and the given extensions from filename.
func baseName(filename string, exts ...string) string {
	name := filepath.Base(filename)
	for _, ext := range exts {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
