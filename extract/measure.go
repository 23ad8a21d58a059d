package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/readable"
)

// measures caches per-node text statistics of one subtree, gathered in a
// single pass so that scoring stays linear on deeply nested documents.
type measures struct {
	textLen []int
	linkLen []int
	depth   []int

	// block is set when a node has a descendant with one of the block
	// child tags.
	block []bool

	// punct counts punctuation in the text of scorable nodes.
	punct map[readable.NodeID]int
}

// measure gathers statistics for root and its descendants. Punctuation is
// counted for the nodes IsCandidate accepts, and only when punct is set.
func measure(tree *readable.Tree, root readable.NodeID, opts readable.ScorerOptions, punct *regexp.Regexp) *measures {
	n := tree.Len()
	m := &measures{
		textLen: make([]int, n),
		linkLen: make([]int, n),
		depth:   make([]int, n),
		block:   make([]bool, n),
		punct:   make(map[readable.NodeID]int),
	}

	var nodes []readable.NodeID
	tree.Walk(root, func(id readable.NodeID) bool {
		nodes = append(nodes, id)
		if id == root {
			m.depth[id] = tree.Depth(id)
		} else {
			m.depth[id] = m.depth[tree.Parent(id)] + 1
		}
		if tree.IsText(id) {
			m.textLen[id] = utf8.RuneCountInString(strings.TrimSpace(tree.Data(id)))
		}
		return true
	})

	// Reverse document order finishes every node before its parent.
	for i := len(nodes) - 1; i >= 0; i-- {
		id := nodes[i]
		if punct != nil && tree.IsElement(id) && m.candidate(tree, id, opts) {
			m.punct[id] = m.countPunctuation(tree, id, punct)
		}
		if id == root {
			continue
		}
		p := tree.Parent(id)
		m.textLen[p] += m.textLen[id]
		if tree.IsElement(id, "a") {
			m.linkLen[p] += m.textLen[id]
		} else {
			m.linkLen[p] += m.linkLen[id]
		}
		m.block[p] = m.block[p] || m.block[id] || tree.IsElement(id, opts.BlockChildTags...)
	}
	return m
}

// candidate mirrors IsCandidate using the cached statistics.
func (m *measures) candidate(tree *readable.Tree, id readable.NodeID, opts readable.ScorerOptions) bool {
	switch tree.Tag(id) {
	case "p":
	case "div", "article", "center", "section":
		if m.block[id] {
			return false
		}
	default:
		return false
	}
	return m.textLen[id] >= opts.MinCandidateLength
}

// countPunctuation reuses the count of a sole child, whose text is the
// same as that of id.
func (m *measures) countPunctuation(tree *readable.Tree, id readable.NodeID, punct *regexp.Regexp) int {
	if c := tree.FirstChild(id); c != readable.NoNode && tree.NextSibling(c) == readable.NoNode {
		if v, ok := m.punct[c]; ok {
			return v
		}
	}
	return len(punct.FindAllStringIndex(tree.InnerText(id), -1))
}

// contentScore mirrors ContentScore using the cached statistics.
func (m *measures) contentScore(id readable.NodeID) float64 {
	return 1 + float64(m.punct[id]) + min(float64(m.textLen[id]/100), 3)
}

// linkDensity mirrors LinkDensity using the cached statistics.
func (m *measures) linkDensity(tree *readable.Tree, id readable.NodeID) float64 {
	total := m.textLen[id]
	if total == 0 {
		return 0
	}
	if tree.IsElement(id, "a") {
		return 1
	}
	return float64(m.linkLen[id]) / float64(total)
}
