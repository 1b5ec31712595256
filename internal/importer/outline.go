package importer

import (
	"strings"

	"github.com/dgallion1/mdnotebook/internal/doctree"
)

// outline nests sections by heading level while text is streamed in.
type outline struct {
	root  *doctree.Node
	stack []outlineEntry
	text  strings.Builder
}

type outlineEntry struct {
	node  *doctree.Node
	level int
}

func newOutline(title string) *outline {
	root := &doctree.Node{Title: title}
	return &outline{
		root:  root,
		stack: []outlineEntry{{node: root, level: 0}},
	}
}

// heading opens a section at level, closing any open sections at the same
// level or deeper.
func (o *outline) heading(level int, title string) {
	o.flush()
	n := &doctree.Node{Title: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, n)
	o.stack = append(o.stack, outlineEntry{node: n, level: level})
}

// paragraph adds a block of text to the innermost open section.
func (o *outline) paragraph(t string) {
	if t == "" {
		return
	}
	if o.text.Len() > 0 {
		o.text.WriteString("\n\n")
	}
	o.text.WriteString(t)
}

func (o *outline) flush() {
	t := strings.TrimSpace(o.text.String())
	o.text.Reset()
	if t == "" {
		return
	}
	top := o.stack[len(o.stack)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// tree finishes the outline. Text seen before any heading becomes a leading
// untitled section.
func (o *outline) tree(title string) *doctree.Tree {
	o.flush()
	t := &doctree.Tree{Title: title}
	if o.root.Text != "" {
		t.Children = append(t.Children, &doctree.Node{Text: o.root.Text})
	}
	t.Children = append(t.Children, o.root.Children...)
	return t
}
