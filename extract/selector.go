package extract

import (
	"cmp"
	"math"
	"slices"

	"github.com/fwojciec/readable"
)

// scoreEpsilon is the difference below which two scores are tied.
const scoreEpsilon = 1e-9

// Selector picks the content root from a score table.
type Selector struct {
	opts readable.ScorerOptions
}

// NewSelector returns a Selector using the threshold of opts.
func NewSelector(opts readable.ScorerOptions) *Selector {
	return &Selector{opts: opts}
}

// Candidates ranks every attached element of the table within <body>,
// best first. A candidate's score is its table score scaled by
// (1 - link density). Ties go to the shallower node, then to the node
// that comes first in the document. The table is not modified.
func (s *Selector) Candidates(tree *readable.Tree, table *readable.ScoreTable) []readable.Candidate {
	if tree == nil || table == nil || table.Len() == 0 {
		return nil
	}

	body := tree.Body()
	m := measure(tree, body, s.opts, nil)
	order := make(map[readable.NodeID]int, table.Len())
	tree.Walk(body, func(n readable.NodeID) bool {
		if table.Has(n) {
			order[n] = len(order)
		}
		return true
	})

	candidates := make([]readable.Candidate, 0, len(order))
	for _, n := range table.Nodes() {
		if _, ok := order[n]; !ok || !tree.IsElement(n) {
			continue
		}
		ld := m.linkDensity(tree, n)
		candidates = append(candidates, readable.Candidate{
			Node:        n,
			Score:       table.Score(n) * (1 - ld),
			LinkDensity: ld,
			Depth:       m.depth[n],
		})
	}

	slices.SortFunc(candidates, func(a, b readable.Candidate) int {
		if math.Abs(a.Score-b.Score) > scoreEpsilon {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.Depth != b.Depth {
			return cmp.Compare(a.Depth, b.Depth)
		}
		return cmp.Compare(order[a.Node], order[b.Node])
	})
	return candidates
}

// Select returns the best candidate whose score exceeds the threshold,
// or ENOCONTENT when there is none.
func (s *Selector) Select(tree *readable.Tree, table *readable.ScoreTable) (readable.Candidate, error) {
	candidates := s.Candidates(tree, table)
	threshold := s.opts.Threshold()
	if len(candidates) > 0 && candidates[0].Score > threshold {
		return candidates[0], nil
	}
	return readable.Candidate{Node: readable.NoNode}, readable.Errorf(readable.ENOCONTENT,
		"no candidate scored above %g among %d scored nodes", threshold, len(candidates))
}
