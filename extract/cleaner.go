package extract

import (
	"strings"

	"github.com/fwojciec/readable"
)

// Cleaner removes markup that can never be article content and
// normalizes what remains, in place.
type Cleaner struct {
	opts readable.ScorerOptions
}

// NewCleaner returns a Cleaner using the class and id patterns of opts.
func NewCleaner(opts readable.ScorerOptions) *Cleaner {
	return &Cleaner{opts: opts}
}

// Clean removes disqualified subtrees and normalizes the tree. It returns
// the number of nodes removed or rewritten. Cleaning repeats until nothing
// changes, so cleaning a cleaned tree returns 0.
func (c *Cleaner) Clean(tree *readable.Tree) int {
	total := 0
	for {
		n := c.removeUnconditional(tree)
		n += c.removeUnlikely(tree)
		n += replaceBrs(tree)
		n += normalize(tree)
		if n == 0 {
			return total
		}
		total += n
	}
}

// removeUnconditional drops scripts, styles, comments and hidden elements
// anywhere in the document.
func (c *Cleaner) removeUnconditional(tree *readable.Tree) int {
	var doomed []readable.NodeID
	tree.Traverse(tree.Root(), func(n readable.NodeID) bool {
		switch tree.Type(n) {
		case readable.CommentNode:
			doomed = append(doomed, n)
			return false
		case readable.ElementNode:
			if tree.IsElement(n, alwaysRemovedTags...) {
				doomed = append(doomed, n)
				return false
			}
			if !tree.IsElement(n, "html", "head", "body") && isHidden(tree, n) {
				doomed = append(doomed, n)
				return false
			}
		}
		return true
	}, nil)
	for _, n := range doomed {
		tree.Detach(n)
	}
	return len(doomed)
}

// removeUnlikely drops page furniture below <body>: elements whose class
// or id look unlikely to be content, link-heavy elements with a negative
// class or id, navigation landmarks and unlikely ARIA roles. A positive
// class or id match always keeps the element. Elements inside tables and
// code are left alone.
func (c *Cleaner) removeUnlikely(tree *readable.Tree) int {
	body := tree.Body()
	var doomed []readable.NodeID
	protected := 0
	tree.Traverse(body, func(n readable.NodeID) bool {
		if !tree.IsElement(n) {
			return true
		}
		if n != body && protected == 0 && !tree.IsElement(n, "html", "head", "body", "a") && c.isUnlikely(tree, n) {
			doomed = append(doomed, n)
			return false
		}
		if tree.IsElement(n, "table", "code", "pre") {
			protected++
		}
		return true
	}, func(n readable.NodeID) {
		if len(doomed) > 0 && doomed[len(doomed)-1] == n {
			return
		}
		if tree.IsElement(n, "table", "code", "pre") {
			protected--
		}
	})
	for _, n := range doomed {
		tree.Detach(n)
	}
	return len(doomed)
}

func (c *Cleaner) isUnlikely(tree *readable.Tree, n readable.NodeID) bool {
	match := tree.Attr(n, "class") + " " + tree.Attr(n, "id")
	if c.opts.PositiveCandidates != nil && c.opts.PositiveCandidates.MatchString(match) {
		return false
	}
	if strings.TrimSpace(match) != "" {
		if c.opts.UnlikelyCandidates != nil && c.opts.UnlikelyCandidates.MatchString(match) &&
			(c.opts.LikelyCandidates == nil || !c.opts.LikelyCandidates.MatchString(match)) {
			return true
		}
		if c.opts.NegativeCandidates != nil && c.opts.NegativeCandidates.MatchString(match) &&
			LinkDensity(tree, n) > 0.5 {
			return true
		}
	}
	if unlikelyRoles[strings.ToLower(tree.Attr(n, "role"))] {
		return true
	}
	return tree.IsElement(n, landmarkTags...)
}

func isHidden(tree *readable.Tree, n readable.NodeID) bool {
	if _, ok := tree.LookupAttr(n, "hidden"); ok {
		return true
	}
	if strings.EqualFold(tree.Attr(n, "aria-hidden"), "true") {
		return true
	}
	style := tree.Attr(n, "style")
	return style != "" && displayNone.MatchString(style)
}

// replaceBrs turns runs of two or more <br> into paragraph breaks: the
// first <br> becomes a <p> holding the inline content that follows it and
// the rest of the run is dropped.
func replaceBrs(tree *readable.Tree) int {
	changed := 0
	for _, br := range tree.ElementsByTag(tree.Root(), "br") {
		if !tree.Attached(br) || tree.IsElement(tree.Parent(br), "pre") {
			continue
		}
		next := nextSignificant(tree, br)
		replaced := false
		for tree.IsElement(next, "br") {
			after := nextSignificant(tree, next)
			tree.Detach(next)
			changed++
			replaced = true
			next = after
		}
		if !replaced {
			continue
		}

		p := tree.NewElement("p")
		tree.Replace(br, p)
		for sib := tree.NextSibling(p); sib != readable.NoNode; {
			if tree.IsElement(sib, "br") && tree.IsElement(nextSignificant(tree, sib), "br") {
				break
			}
			if tree.IsElement(sib) && blockTags[tree.Tag(sib)] {
				break
			}
			following := tree.NextSibling(sib)
			tree.AppendChild(p, sib)
			sib = following
		}
		for last := tree.LastChild(p); last != readable.NoNode && isWhitespace(tree, last); last = tree.LastChild(p) {
			tree.Detach(last)
		}
		if tree.FirstChild(p) == readable.NoNode {
			tree.Detach(p)
		} else if parent := tree.Parent(p); tree.IsElement(parent, "p") {
			tree.SetTag(parent, "div")
		}
	}
	return changed
}

// normalize merges adjacent text nodes, drops whitespace-only text next to
// block elements and unwraps attribute-less wrappers around a single
// element. Children are handled before their parents.
func normalize(tree *readable.Tree) int {
	changed := 0
	nodes := append([]readable.NodeID{tree.Root()}, tree.Descendants(tree.Root())...)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if tree.Type(n) != readable.ElementNode && tree.Type(n) != readable.DocumentNode {
			continue
		}
		if n != tree.Root() && !tree.Attached(n) {
			continue
		}
		if !tree.IsElement(n, "pre", "textarea") {
			changed += mergeText(tree, n)
			changed += dropBlockWhitespace(tree, n)
		}
		if isVoidWrapper(tree, n) {
			tree.Unwrap(n)
			changed++
		}
	}
	return changed
}

func mergeText(tree *readable.Tree, parent readable.NodeID) int {
	merged := 0
	for c := tree.FirstChild(parent); c != readable.NoNode; {
		next := tree.NextSibling(c)
		if tree.IsText(c) && tree.IsText(next) {
			tree.SetData(c, tree.Data(c)+tree.Data(next))
			tree.Detach(next)
			merged++
			continue
		}
		c = next
	}
	return merged
}

func dropBlockWhitespace(tree *readable.Tree, parent readable.NodeID) int {
	dropped := 0
	for c := tree.FirstChild(parent); c != readable.NoNode; {
		next := tree.NextSibling(c)
		if isWhitespace(tree, c) && (isBlock(tree, tree.PrevSibling(c)) || isBlock(tree, next)) {
			tree.Detach(c)
			dropped++
		}
		c = next
	}
	return dropped
}

// isVoidWrapper reports whether n is a div, span or section without
// attributes whose only child is an element.
func isVoidWrapper(tree *readable.Tree, n readable.NodeID) bool {
	if !tree.IsElement(n, "div", "span", "section") || len(tree.Attrs(n)) > 0 {
		return false
	}
	child := tree.FirstChild(n)
	return child != readable.NoNode && child == tree.LastChild(n) && tree.IsElement(child)
}

func isBlock(tree *readable.Tree, n readable.NodeID) bool {
	return tree.IsElement(n) && blockTags[tree.Tag(n)]
}

func isWhitespace(tree *readable.Tree, n readable.NodeID) bool {
	return tree.IsText(n) && strings.TrimSpace(tree.Data(n)) == ""
}

// nextSignificant returns the next sibling of n that is not
// whitespace-only text.
func nextSignificant(tree *readable.Tree, n readable.NodeID) readable.NodeID {
	next := tree.NextSibling(n)
	for next != readable.NoNode && isWhitespace(tree, next) {
		next = tree.NextSibling(next)
	}
	return next
}
