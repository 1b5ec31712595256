package importer

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/doctree"
)

// TextParser imports plain text. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	tree := &doctree.Tree{Title: baseName(filename, ".txt")}
	if len(paragraphs) > 0 {
		tree.Children = []*doctree.Node{{Text: strings.Join(paragraphs, "\n\n")}}
	}
	return tree, nil
}
