package importer

import (
	"html"
	"strings"

	"github.com/dgallion1/mdnotebook/internal/doctree"
)

// ToHTML renders an outline as page-body HTML. Top-level sections become
// <h3>, deeper ones step down to <h6>; <h2> is never emitted because a
// level-2 heading starts a new notebook page.
func ToHTML(tree *doctree.Tree) string {
	var b strings.Builder
	for _, n := range tree.Children {
		writeNode(&b, n, 3)
	}
	return strings.TrimSpace(b.String())
}

func writeNode(b *strings.Builder, n *doctree.Node, level int) {
	if level > 6 {
		level = 6
	}
	if n.Title != "" {
		tag := "h" + string(rune('0'+level))
		b.WriteString("<" + tag + ">" + html.EscapeString(n.Title) + "</" + tag + ">\n")
	}
	for _, para := range strings.Split(n.Text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(l)
		}
		b.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>\n")
	}
	for _, c := range n.Children {
		writeNode(b, c, level+1)
	}
}
