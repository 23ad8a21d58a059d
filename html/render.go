package html

import (
	"strings"
	"unicode"

	"github.com/fwojciec/readable"
	"golang.org/x/net/html"
)

// Render serializes the subtree of id as HTML.
func Render(tree *readable.Tree, id readable.NodeID) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, ToNode(tree, id)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// blockSeparators maps block-level tags to the number of newlines placed
// around them in plain text.
var blockSeparators = map[string]int{
	"p": 2, "div": 2, "section": 2, "article": 2, "main": 2, "header": 2, "footer": 2, "aside": 2, "nav": 2,
	"h1": 2, "h2": 2, "h3": 2, "h4": 2, "h5": 2, "h6": 2,
	"ul": 2, "ol": 2, "dl": 2, "blockquote": 2, "pre": 2, "table": 2, "figure": 2, "hr": 2,
	"address": 2, "details": 2, "fieldset": 2,
	"li": 1, "dt": 1, "dd": 1, "tr": 1, "br": 1, "figcaption": 1, "summary": 1, "caption": 1,
}

// RenderText returns the plain text of the subtree of id. Whitespace is
// collapsed, block elements are separated by blank lines, list items and
// table rows sit on their own lines, and <pre> content is kept verbatim.
func RenderText(tree *readable.Tree, id readable.NodeID) string {
	w := &textWriter{}
	pre := 0
	tree.Traverse(id, func(n readable.NodeID) bool {
		switch tree.Type(n) {
		case readable.TextNode:
			w.text(tree.Data(n), pre > 0)
		case readable.ElementNode:
			tag := tree.Tag(n)
			switch tag {
			case "script", "style", "noscript", "template", "head":
				return false
			case "pre":
				pre++
			case "td", "th":
				w.space = w.started
			}
			w.block(blockSeparators[tag])
		case readable.CommentNode, readable.DoctypeNode:
			return false
		}
		return true
	}, func(n readable.NodeID) {
		if !tree.IsElement(n) {
			return
		}
		tag := tree.Tag(n)
		if tag == "pre" && pre > 0 {
			pre--
		}
		if tag != "br" {
			w.block(blockSeparators[tag])
		}
	})
	return w.b.String()
}

type textWriter struct {
	b        strings.Builder
	started  bool
	space    bool
	newlines int
}

func (w *textWriter) block(n int) {
	if n > w.newlines {
		w.newlines = n
	}
}

func (w *textWriter) text(s string, verbatim bool) {
	if verbatim {
		if s != "" {
			w.flush()
			w.b.WriteString(s)
		}
		return
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			w.space = w.started
			continue
		}
		w.flush()
		w.b.WriteRune(r)
	}
}

func (w *textWriter) flush() {
	switch {
	case !w.started:
		w.started = true
	case w.newlines > 0:
		w.b.WriteString(strings.Repeat("\n", w.newlines))
	case w.space:
		w.b.WriteByte(' ')
	}
	w.newlines = 0
	w.space = false
}
