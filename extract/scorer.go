package extract

import (
	"math"

	"github.com/fwojciec/readable"
)

// Ensure Scorer implements readable.Scorer at compile time.
var _ readable.Scorer = (*Scorer)(nil)

// Scorer is the default content scorer.
//
// Paragraph-like nodes below <body> earn a content score from their
// punctuation and length. The node keeps the full score and each ancestor
// up to MaxCandidateParents levels receives a share decayed by its level.
// Every node touched for the first time is seeded with a weight derived
// from its tag and its class and id attributes.
type Scorer struct{}

// NewScorer returns the default scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score builds the score table of tree. The tree is not modified.
func (s *Scorer) Score(tree *readable.Tree, opts readable.ScorerOptions) (*readable.ScoreTable, error) {
	if tree == nil {
		return nil, readable.Errorf(readable.EINVALID, "tree required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	table := readable.NewScoreTable()
	body := tree.Body()
	m := measure(tree, body, opts, opts.Punctuations)
	tree.Walk(body, func(n readable.NodeID) bool {
		if n == body || !tree.IsElement(n) || !m.candidate(tree, n, opts) {
			return true
		}

		score := m.contentScore(n)
		credit(tree, table, n, score, opts)

		p := tree.Parent(n)
		for level := 1; level <= opts.MaxCandidateParents && tree.IsElement(p); level++ {
			credit(tree, table, p, opts.CandidateScore.Decay(score, level), opts)
			if p == body {
				break
			}
			p = tree.Parent(p)
		}
		return true
	})
	return table, nil
}

// credit adds delta to the entry of n, seeding a new entry with its
// initial score.
func credit(tree *readable.Tree, table *readable.ScoreTable, n readable.NodeID, delta float64, opts readable.ScorerOptions) {
	if !table.Has(n) {
		table.Add(n, InitScore(tree, n, opts))
	}
	table.Add(n, delta)
}

// IsCandidate reports whether n earns a content score of its own: a <p>,
// or a div-like container without block children, holding at least
// MinCandidateLength characters of text.
func IsCandidate(tree *readable.Tree, n readable.NodeID, opts readable.ScorerOptions) bool {
	switch tree.Tag(n) {
	case "p", "div", "article", "center", "section":
	default:
		return false
	}
	if tree.TextLen(n) < opts.MinCandidateLength {
		return false
	}
	return tree.IsElement(n, "p") || tree.FirstElement(n, opts.BlockChildTags...) == readable.NoNode
}

// ContentScore is 1, plus one per punctuation mark, plus one per 100
// characters of text up to 3.
func ContentScore(tree *readable.Tree, n readable.NodeID, opts readable.ScorerOptions) float64 {
	score := 1.0
	if opts.Punctuations != nil {
		score += float64(len(opts.Punctuations.FindAllStringIndex(tree.InnerText(n), -1)))
	}
	score += math.Min(math.Floor(float64(tree.TextLen(n))/100), 3)
	return score
}

// InitScore is the tag weight of n plus its class weight.
func InitScore(tree *readable.Tree, n readable.NodeID, opts readable.ScorerOptions) float64 {
	var score float64
	switch tree.Tag(n) {
	case "article":
		score = 10
	case "div", "section":
		score = 5
	case "pre", "td", "blockquote":
		score = 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form", "nav", "aside":
		score = -3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th", "footer":
		score = -5
	}
	return score + ClassWeight(tree, n, opts)
}

// ClassWeight scores the id and class attributes of n separately against
// the positive and negative patterns.
func ClassWeight(tree *readable.Tree, n readable.NodeID, opts readable.ScorerOptions) float64 {
	var weight float64
	for _, key := range []string{"id", "class"} {
		val := tree.Attr(n, key)
		if val == "" {
			continue
		}
		if opts.PositiveCandidates != nil && opts.PositiveCandidates.MatchString(val) {
			weight += opts.PositiveCandidateWeight
		}
		if opts.NegativeCandidates != nil && opts.NegativeCandidates.MatchString(val) {
			weight -= opts.NegativeCandidateWeight
		}
	}
	return weight
}

// LinkDensity is the share of the text of n that sits inside links.
func LinkDensity(tree *readable.Tree, n readable.NodeID) float64 {
	total := tree.TextLen(n)
	if total == 0 {
		return 0
	}
	if tree.IsElement(n, "a") {
		return 1
	}
	links := 0
	tree.Walk(n, func(c readable.NodeID) bool {
		if c != n && tree.IsElement(c, "a") {
			links += tree.TextLen(c)
			return false
		}
		return true
	})
	return float64(links) / float64(total)
}
