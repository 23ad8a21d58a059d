package readable

import (
	"strings"
	"unicode/utf8"
)

// NodeID is a stable handle to a node in a Tree.
// Handles stay valid across every mutation; detached nodes remain in the
// arena and are simply unreachable from the root.
type NodeID int

// NoNode is the absent handle.
const NoNode NodeID = -1

// NodeType identifies the kind of a node.
type NodeType uint8

// NodeType constants.
const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// Attribute is an element attribute. Key is lower-case for HTML elements.
type Attribute struct {
	Namespace string
	Key       string
	Val       string
}

type node struct {
	typ       NodeType
	tag       string
	namespace string
	data      string
	attrs     []Attribute

	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	prev       NodeID
	next       NodeID
}

// Tree is a mutable document tree stored as an arena of nodes.
//
// Nodes link to their parent, first and last child and both siblings by
// handle, so structural edits are O(1) and traversals never recurse.
type Tree struct {
	nodes []node
	root  NodeID
}

// NewTree returns a tree holding a single document node.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.add(node{typ: DocumentNode})
	return t
}

// Root returns the document node.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes ever allocated in the arena,
// including detached ones.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) add(n node) NodeID {
	n.parent, n.firstChild, n.lastChild, n.prev, n.next = NoNode, NoNode, NoNode, NoNode, NoNode
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// NewElement allocates a detached HTML element.
func (t *Tree) NewElement(tag string, attrs ...Attribute) NodeID {
	return t.NewElementNS("", tag, attrs...)
}

// NewElementNS allocates a detached element in a foreign namespace
// such as "svg" or "math".
func (t *Tree) NewElementNS(namespace, tag string, attrs ...Attribute) NodeID {
	return t.add(node{typ: ElementNode, tag: tag, namespace: namespace, attrs: attrs})
}

// NewText allocates a detached text node.
func (t *Tree) NewText(data string) NodeID {
	return t.add(node{typ: TextNode, data: data})
}

// NewComment allocates a detached comment node.
func (t *Tree) NewComment(data string) NodeID {
	return t.add(node{typ: CommentNode, data: data})
}

// NewDoctype allocates a detached doctype node.
func (t *Tree) NewDoctype(name string, attrs ...Attribute) NodeID {
	return t.add(node{typ: DoctypeNode, data: name, attrs: attrs})
}

// Valid reports whether id refers to a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Type returns the node kind.
func (t *Tree) Type(id NodeID) NodeType { return t.nodes[id].typ }

// Tag returns the element tag name, or "" for non-elements.
func (t *Tree) Tag(id NodeID) string { return t.nodes[id].tag }

// SetTag renames an element, keeping its attributes and children.
func (t *Tree) SetTag(id NodeID, tag string) { t.nodes[id].tag = tag }

// Namespace returns the element namespace; "" means HTML.
func (t *Tree) Namespace(id NodeID) string { return t.nodes[id].namespace }

// Data returns the contents of a text or comment node, or a doctype name.
func (t *Tree) Data(id NodeID) string { return t.nodes[id].data }

// SetData replaces the contents of a text or comment node.
func (t *Tree) SetData(id NodeID, data string) { t.nodes[id].data = data }

// IsElement reports whether id is an element. When tags are given the
// element must also have one of them.
func (t *Tree) IsElement(id NodeID, tags ...string) bool {
	if id == NoNode || t.nodes[id].typ != ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	tag := t.nodes[id].tag
	for _, want := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// IsText reports whether id is a text node.
func (t *Tree) IsText(id NodeID) bool {
	return id != NoNode && t.nodes[id].typ == TextNode
}

// Parent returns the parent handle or NoNode.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// FirstChild returns the first child handle or NoNode.
func (t *Tree) FirstChild(id NodeID) NodeID { return t.nodes[id].firstChild }

// LastChild returns the last child handle or NoNode.
func (t *Tree) LastChild(id NodeID) NodeID { return t.nodes[id].lastChild }

// NextSibling returns the next sibling handle or NoNode.
func (t *Tree) NextSibling(id NodeID) NodeID { return t.nodes[id].next }

// PrevSibling returns the previous sibling handle or NoNode.
func (t *Tree) PrevSibling(id NodeID) NodeID { return t.nodes[id].prev }

// Children returns a snapshot of the direct children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns a snapshot of the direct element children of id.
func (t *Tree) ElementChildren(id NodeID) []NodeID {
	var out []NodeID
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[c].next {
		if t.nodes[c].typ == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild adds child as the last child of parent, detaching it from
// its current position first. It panics if child is parent or one of its
// ancestors.
func (t *Tree) AppendChild(parent, child NodeID) {
	t.InsertBefore(parent, child, NoNode)
}

// InsertBefore inserts child into parent immediately before ref.
// A NoNode ref appends. The child is detached from its current position
// first. It panics if child is parent or one of its ancestors.
func (t *Tree) InsertBefore(parent, child, ref NodeID) {
	if child == parent || (t.nodes[child].firstChild != NoNode && t.Contains(child, parent)) {
		panic("readable: InsertBefore would create a cycle")
	}
	if ref != NoNode && t.nodes[ref].parent != parent {
		panic("readable: InsertBefore reference is not a child of parent")
	}
	t.Detach(child)

	var prev NodeID
	if ref == NoNode {
		prev = t.nodes[parent].lastChild
		t.nodes[parent].lastChild = child
	} else {
		prev = t.nodes[ref].prev
		t.nodes[ref].prev = child
	}
	if prev == NoNode {
		t.nodes[parent].firstChild = child
	} else {
		t.nodes[prev].next = child
	}
	t.nodes[child].parent = parent
	t.nodes[child].prev = prev
	t.nodes[child].next = ref
}

// Detach unlinks id from its parent. The subtree below id is kept intact.
func (t *Tree) Detach(id NodeID) {
	n := &t.nodes[id]
	if n.parent == NoNode {
		return
	}
	if n.prev == NoNode {
		t.nodes[n.parent].firstChild = n.next
	} else {
		t.nodes[n.prev].next = n.next
	}
	if n.next == NoNode {
		t.nodes[n.parent].lastChild = n.prev
	} else {
		t.nodes[n.next].prev = n.prev
	}
	n.parent, n.prev, n.next = NoNode, NoNode, NoNode
}

// Replace puts replacement where old was and detaches old.
func (t *Tree) Replace(old, replacement NodeID) {
	parent := t.nodes[old].parent
	if parent == NoNode {
		return
	}
	t.InsertBefore(parent, replacement, old)
	t.Detach(old)
}

// Unwrap moves the children of id into its parent at its position and
// detaches id.
func (t *Tree) Unwrap(id NodeID) {
	parent := t.nodes[id].parent
	if parent == NoNode {
		return
	}
	for c := t.nodes[id].firstChild; c != NoNode; c = t.nodes[id].firstChild {
		t.InsertBefore(parent, c, id)
	}
	t.Detach(id)
}

// Attrs returns a copy of the element's attributes.
func (t *Tree) Attrs(id NodeID) []Attribute {
	attrs := t.nodes[id].attrs
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}

// Attr returns the value of the named attribute, or "" when absent.
func (t *Tree) Attr(id NodeID, key string) string {
	v, _ := t.LookupAttr(id, key)
	return v
}

// LookupAttr returns the value of the named attribute and whether it exists.
func (t *Tree) LookupAttr(id NodeID, key string) (string, bool) {
	for _, a := range t.nodes[id].attrs {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds the named attribute.
func (t *Tree) SetAttr(id NodeID, key, val string) {
	n := &t.nodes[id]
	for i := range n.attrs {
		if n.attrs[i].Namespace == "" && n.attrs[i].Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func (t *Tree) RemoveAttr(id NodeID, key string) {
	t.RetainAttrs(id, func(a Attribute) bool {
		return a.Namespace != "" || a.Key != key
	})
}

// RetainAttrs keeps only the attributes for which keep returns true.
func (t *Tree) RetainAttrs(id NodeID, keep func(Attribute) bool) {
	n := &t.nodes[id]
	kept := n.attrs[:0]
	for _, a := range n.attrs {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	n.attrs = kept
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		d++
	}
	return d
}

// Attached reports whether id is reachable from the document root.
func (t *Tree) Attached(id NodeID) bool {
	return t.Contains(t.root, id)
}

// Contains reports whether id is ancestor itself or lies below it.
func (t *Tree) Contains(ancestor, id NodeID) bool {
	for n := id; n != NoNode; n = t.nodes[n].parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Walk visits id and its descendants in document order. When fn returns
// false the children of the visited node are skipped. fn may detach the
// node it is visiting but must not detach anything else.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	n := id
	for n != NoNode {
		next, parent := t.nodes[n].next, t.nodes[n].parent
		descend := fn(n)
		if descend && t.nodes[n].firstChild != NoNode {
			n = t.nodes[n].firstChild
			continue
		}
		if n == id {
			return
		}
		n = t.following(id, next, parent)
	}
}

// following returns the node after a finished subtree whose root had the
// given next sibling and parent, never leaving the subtree of stop.
func (t *Tree) following(stop, next, parent NodeID) NodeID {
	if next != NoNode {
		return next
	}
	for p := parent; p != NoNode && p != stop; p = t.nodes[p].parent {
		if s := t.nodes[p].next; s != NoNode {
			return s
		}
	}
	return NoNode
}

// Traverse visits id and its descendants calling enter before and leave
// after the children of each node. When enter returns false the children
// are skipped but leave is still called. Neither callback may change the
// tree structure.
func (t *Tree) Traverse(id NodeID, enter func(NodeID) bool, leave func(NodeID)) {
	n := id
	for {
		if enter(n) && t.nodes[n].firstChild != NoNode {
			n = t.nodes[n].firstChild
			continue
		}
		for {
			if leave != nil {
				leave(n)
			}
			if n == id {
				return
			}
			if s := t.nodes[n].next; s != NoNode {
				n = s
				break
			}
			n = t.nodes[n].parent
		}
	}
}

// Descendants returns a snapshot of all nodes below id in document order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if n != id {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ElementsByTag returns the elements below id with any of the given tags
// in document order. With no tags every element is returned.
func (t *Tree) ElementsByTag(id NodeID, tags ...string) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if n != id && t.IsElement(n, tags...) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FirstElement returns the first element below id with one of the tags.
func (t *Tree) FirstElement(id NodeID, tags ...string) NodeID {
	found := NoNode
	t.Walk(id, func(n NodeID) bool {
		if found != NoNode {
			return false
		}
		if n != id && t.IsElement(n, tags...) {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountElements returns the number of elements in the subtree of id,
// including id itself.
func (t *Tree) CountElements(id NodeID) int {
	count := 0
	t.Walk(id, func(n NodeID) bool {
		if t.nodes[n].typ == ElementNode {
			count++
		}
		return true
	})
	return count
}

// Body returns the first body element, or the root when there is none.
func (t *Tree) Body() NodeID {
	if b := t.FirstElement(t.root, "body"); b != NoNode {
		return b
	}
	return t.root
}

// Head returns the first head element or NoNode.
func (t *Tree) Head() NodeID {
	return t.FirstElement(t.root, "head")
}

// InnerText returns the concatenated text of all text nodes below id.
func (t *Tree) InnerText(id NodeID) string {
	if t.nodes[id].typ == TextNode {
		return t.nodes[id].data
	}
	var b strings.Builder
	t.Walk(id, func(n NodeID) bool {
		if t.nodes[n].typ == TextNode {
			b.WriteString(t.nodes[n].data)
		}
		return true
	})
	return b.String()
}

// TextLen returns the sum of the trimmed character counts of all text
// nodes below id.
func (t *Tree) TextLen(id NodeID) int {
	count := 0
	t.Walk(id, func(n NodeID) bool {
		if t.nodes[n].typ == TextNode {
			count += utf8.RuneCountInString(strings.TrimSpace(t.nodes[n].data))
		}
		return true
	})
	return count
}
