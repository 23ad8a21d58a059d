package readable

// ScoreTable maps nodes to accumulated content scores.
//
// Entries are only ever added or increased during a scoring pass; there is
// no way to delete one. Iteration follows insertion order so that every
// consumer sees the same sequence for the same input.
type ScoreTable struct {
	scores map[NodeID]float64
	order  []NodeID
}

// NewScoreTable returns an empty table.
func NewScoreTable() *ScoreTable {
	return &ScoreTable{scores: make(map[NodeID]float64)}
}

// Add accumulates delta onto the score of id, creating the entry if needed.
// The zero ScoreTable is ready to use.
func (s *ScoreTable) Add(id NodeID, delta float64) {
	if s.scores == nil {
		s.scores = make(map[NodeID]float64)
	}
	if _, ok := s.scores[id]; !ok {
		s.order = append(s.order, id)
	}
	s.scores[id] += delta
}

// Has reports whether id has an entry.
func (s *ScoreTable) Has(id NodeID) bool {
	_, ok := s.scores[id]
	return ok
}

// Score returns the score of id, or 0 when it has no entry.
func (s *ScoreTable) Score(id NodeID) float64 {
	return s.scores[id]
}

// Nodes returns the scored nodes in insertion order.
func (s *ScoreTable) Nodes() []NodeID {
	out := make([]NodeID, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of entries.
func (s *ScoreTable) Len() int { return len(s.order) }

// Candidate is a scored node considered for the content root.
type Candidate struct {
	Node NodeID

	// Score is the table score scaled by (1 - LinkDensity).
	Score float64

	LinkDensity float64
	Depth       int
}

// Scorer assigns content scores to the nodes of a tree.
// Implementations must not mutate the tree.
type Scorer interface {
	Score(tree *Tree, opts ScorerOptions) (*ScoreTable, error)
}
