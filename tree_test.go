package readable_test

import (
	"testing"

	"github.com/fwojciec/readable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildList returns a tree of <body><ul><li>a</li><li>b</li><li>c</li></ul></body>.
func buildList(t *testing.T) (*readable.Tree, readable.NodeID, []readable.NodeID) {
	t.Helper()

	tree := readable.NewTree()
	body := tree.NewElement("body")
	tree.AppendChild(tree.Root(), body)
	ul := tree.NewElement("ul")
	tree.AppendChild(body, ul)
	var items []readable.NodeID
	for _, s := range []string{"a", "b", "c"} {
		li := tree.NewElement("li")
		tree.AppendChild(li, tree.NewText(s))
		tree.AppendChild(ul, li)
		items = append(items, li)
	}
	return tree, ul, items
}

func TestTree_AppendChild(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)

	assert.Equal(t, items, tree.Children(ul))
	assert.Equal(t, items[0], tree.FirstChild(ul))
	assert.Equal(t, items[2], tree.LastChild(ul))
	assert.Equal(t, items[1], tree.NextSibling(items[0]))
	assert.Equal(t, items[0], tree.PrevSibling(items[1]))
	assert.Equal(t, ul, tree.Parent(items[1]))
	assert.Equal(t, "abc", tree.InnerText(ul))
}

func TestTree_AppendChild_MovesAttachedNode(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)

	tree.AppendChild(ul, items[0])

	assert.Equal(t, []readable.NodeID{items[1], items[2], items[0]}, tree.Children(ul))
	assert.Equal(t, "bca", tree.InnerText(ul))
}

func TestTree_AppendChild_PanicsOnCycle(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)

	assert.Panics(t, func() { tree.AppendChild(items[0], ul) })
}

func TestTree_Detach(t *testing.T) {
	t.Parallel()

	t.Run("unlinks middle child", func(t *testing.T) {
		t.Parallel()

		tree, ul, items := buildList(t)
		tree.Detach(items[1])

		assert.Equal(t, []readable.NodeID{items[0], items[2]}, tree.Children(ul))
		assert.Equal(t, items[2], tree.NextSibling(items[0]))
		assert.Equal(t, readable.NoNode, tree.Parent(items[1]))
		assert.False(t, tree.Attached(items[1]))
	})

	t.Run("keeps detached subtree and handle", func(t *testing.T) {
		t.Parallel()

		tree, _, items := buildList(t)
		tree.Detach(items[0])

		assert.Equal(t, "a", tree.InnerText(items[0]))
		assert.True(t, tree.Valid(items[0]))
	})

	t.Run("unlinks first and last child", func(t *testing.T) {
		t.Parallel()

		tree, ul, items := buildList(t)
		tree.Detach(items[0])
		tree.Detach(items[2])

		assert.Equal(t, items[1], tree.FirstChild(ul))
		assert.Equal(t, items[1], tree.LastChild(ul))
	})
}

func TestTree_InsertBefore(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)
	li := tree.NewElement("li")

	tree.InsertBefore(ul, li, items[1])

	assert.Equal(t, []readable.NodeID{items[0], li, items[1], items[2]}, tree.Children(ul))
}

func TestTree_Replace(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)
	p := tree.NewElement("p")

	tree.Replace(items[1], p)

	assert.Equal(t, []readable.NodeID{items[0], p, items[2]}, tree.Children(ul))
	assert.False(t, tree.Attached(items[1]))
}

func TestTree_Unwrap(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)
	body := tree.Parent(ul)

	tree.Unwrap(ul)

	assert.Equal(t, items, tree.Children(body))
	assert.False(t, tree.Attached(ul))
}

func TestTree_Attributes(t *testing.T) {
	t.Parallel()

	tree := readable.NewTree()
	div := tree.NewElement("div", readable.Attribute{Key: "class", Val: "post"})

	assert.Equal(t, "post", tree.Attr(div, "class"))
	_, ok := tree.LookupAttr(div, "id")
	assert.False(t, ok)

	tree.SetAttr(div, "id", "main")
	tree.SetAttr(div, "class", "entry")
	assert.Equal(t, "main", tree.Attr(div, "id"))
	assert.Equal(t, "entry", tree.Attr(div, "class"))

	tree.RemoveAttr(div, "class")
	assert.Equal(t, []readable.Attribute{{Key: "id", Val: "main"}}, tree.Attrs(div))
}

func TestTree_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits in document order", func(t *testing.T) {
		t.Parallel()

		tree, ul, _ := buildList(t)
		var tags []string
		tree.Walk(ul, func(n readable.NodeID) bool {
			if tree.IsElement(n) {
				tags = append(tags, tree.Tag(n))
			} else {
				tags = append(tags, tree.Data(n))
			}
			return true
		})

		assert.Equal(t, []string{"ul", "li", "a", "li", "b", "li", "c"}, tags)
	})

	t.Run("skips children when callback returns false", func(t *testing.T) {
		t.Parallel()

		tree, ul, _ := buildList(t)
		count := 0
		tree.Walk(ul, func(n readable.NodeID) bool {
			count++
			return !tree.IsElement(n, "li")
		})

		assert.Equal(t, 4, count)
	})

	t.Run("tolerates detaching the visited node", func(t *testing.T) {
		t.Parallel()

		tree, ul, items := buildList(t)
		tree.Walk(ul, func(n readable.NodeID) bool {
			if tree.IsElement(n, "li") && tree.InnerText(n) != "b" {
				tree.Detach(n)
				return false
			}
			return true
		})

		assert.Equal(t, []readable.NodeID{items[1]}, tree.Children(ul))
	})

	t.Run("stays inside the starting subtree", func(t *testing.T) {
		t.Parallel()

		tree, _, items := buildList(t)
		var visited []readable.NodeID
		tree.Walk(items[0], func(n readable.NodeID) bool {
			visited = append(visited, n)
			return true
		})

		assert.Len(t, visited, 2)
	})
}

func TestTree_Traverse(t *testing.T) {
	t.Parallel()

	tree, ul, _ := buildList(t)
	var events []string
	tree.Traverse(ul, func(n readable.NodeID) bool {
		if tree.IsElement(n) {
			events = append(events, "<"+tree.Tag(n))
		}
		return true
	}, func(n readable.NodeID) {
		if tree.IsElement(n) {
			events = append(events, tree.Tag(n)+">")
		}
	})

	assert.Equal(t, []string{"<ul", "<li", "li>", "<li", "li>", "<li", "li>", "ul>"}, events)
}

func TestTree_DeepChainDoesNotRecurse(t *testing.T) {
	t.Parallel()

	tree := readable.NewTree()
	parent := tree.Root()
	for range 200000 {
		div := tree.NewElement("div")
		tree.AppendChild(parent, div)
		parent = div
	}
	tree.AppendChild(parent, tree.NewText("  deep  "))

	assert.Equal(t, 4, tree.TextLen(tree.Root()))
	assert.Equal(t, 200000, tree.CountElements(tree.Root()))
	assert.Equal(t, 200000, tree.Depth(parent))
}

func TestTree_TextLen(t *testing.T) {
	t.Parallel()

	tree := readable.NewTree()
	p := tree.NewElement("p")
	tree.AppendChild(p, tree.NewText("  héllo "))
	em := tree.NewElement("em")
	tree.AppendChild(em, tree.NewText(" world"))
	tree.AppendChild(p, em)

	assert.Equal(t, 10, tree.TextLen(p))
}

func TestTree_Body(t *testing.T) {
	t.Parallel()

	t.Run("returns body element", func(t *testing.T) {
		t.Parallel()

		tree, ul, _ := buildList(t)
		require.True(t, tree.IsElement(tree.Body(), "body"))
		assert.Equal(t, tree.Parent(ul), tree.Body())
	})

	t.Run("falls back to root", func(t *testing.T) {
		t.Parallel()

		tree := readable.NewTree()
		assert.Equal(t, tree.Root(), tree.Body())
		assert.Equal(t, readable.NoNode, tree.Head())
	})
}

func TestTree_ElementsByTag(t *testing.T) {
	t.Parallel()

	tree, ul, items := buildList(t)

	assert.Equal(t, items, tree.ElementsByTag(tree.Root(), "li"))
	assert.Equal(t, items[0], tree.FirstElement(ul, "li"))
	assert.Equal(t, readable.NoNode, tree.FirstElement(ul, "table"))
}
