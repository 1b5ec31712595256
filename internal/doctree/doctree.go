// Package doctree is the outline an imported file is reduced to before it is
// written into a notebook page.
package doctree

// Tree is a parsed external document.
type Tree struct {
	Title    string  // From document metadata or the file name
	Children []*Node // Top-level sections
}

// Node is a section of an imported document.
type Node struct {
	Title    string  // Heading text; empty for a bare text block
	Text     string  // Paragraphs separated by blank lines
	Children []*Node // Subsections
}

// Empty reports whether the tree carries no text or headings at all.
func (t *Tree) Empty() bool {
	for _, n := range t.Children {
		if !n.empty() {
			return false
		}
	}
	return true
}

func (n *Node) empty() bool {
	if n.Title != "" || n.Text != "" {
		return false
	}
	for _, c := range n.Children {
		if !c.empty() {
			return false
		}
	}
	return true
}
