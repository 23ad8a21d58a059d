package html

import (
	"github.com/fwojciec/readable"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromNode copies a parsed node and its descendants into a new tree.
// A document node maps onto the tree root; any other node becomes the
// root's only child.
func FromNode(root *html.Node) *readable.Tree {
	tree := readable.NewTree()
	if root == nil {
		return tree
	}

	start := tree.Root()
	if root.Type != html.DocumentNode {
		start = newNode(tree, root)
		if start == readable.NoNode {
			return tree
		}
		tree.AppendChild(tree.Root(), start)
	}

	type frame struct {
		src *html.Node
		dst readable.NodeID
	}
	stack := []frame{{root, start}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := f.src.FirstChild; c != nil; c = c.NextSibling {
			id := newNode(tree, c)
			if id == readable.NoNode {
				continue
			}
			tree.AppendChild(f.dst, id)
			if c.FirstChild != nil {
				stack = append(stack, frame{c, id})
			}
		}
	}
	return tree
}

func newNode(tree *readable.Tree, n *html.Node) readable.NodeID {
	switch n.Type {
	case html.ElementNode:
		return tree.NewElementNS(n.Namespace, n.Data, fromAttrs(n.Attr)...)
	case html.TextNode, html.RawNode:
		return tree.NewText(n.Data)
	case html.CommentNode:
		return tree.NewComment(n.Data)
	case html.DoctypeNode:
		return tree.NewDoctype(n.Data, fromAttrs(n.Attr)...)
	default:
		return readable.NoNode
	}
}

func fromAttrs(attrs []html.Attribute) []readable.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]readable.Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = readable.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
	}
	return out
}

// ToNode copies the subtree of id into a detached *html.Node. The tree
// root becomes a document node.
func ToNode(tree *readable.Tree, id readable.NodeID) *html.Node {
	root := toNode(tree, id)

	type frame struct {
		src readable.NodeID
		dst *html.Node
	}
	stack := []frame{{id, root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := tree.FirstChild(f.src); c != readable.NoNode; c = tree.NextSibling(c) {
			n := toNode(tree, c)
			f.dst.AppendChild(n)
			if tree.FirstChild(c) != readable.NoNode {
				stack = append(stack, frame{c, n})
			}
		}
	}
	return root
}

func toNode(tree *readable.Tree, id readable.NodeID) *html.Node {
	switch tree.Type(id) {
	case readable.DocumentNode:
		return &html.Node{Type: html.DocumentNode}
	case readable.ElementNode:
		n := &html.Node{
			Type:      html.ElementNode,
			Data:      tree.Tag(id),
			Namespace: tree.Namespace(id),
			Attr:      toAttrs(tree.Attrs(id)),
		}
		if n.Namespace == "" {
			n.DataAtom = atom.Lookup([]byte(n.Data))
		}
		return n
	case readable.CommentNode:
		return &html.Node{Type: html.CommentNode, Data: tree.Data(id)}
	case readable.DoctypeNode:
		return &html.Node{Type: html.DoctypeNode, Data: tree.Data(id), Attr: toAttrs(tree.Attrs(id))}
	default:
		return &html.Node{Type: html.TextNode, Data: tree.Data(id)}
	}
}

func toAttrs(attrs []readable.Attribute) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]html.Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
	}
	return out
}
