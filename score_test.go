package readable_test

import (
	"testing"

	"github.com/fwojciec/readable"
	"github.com/stretchr/testify/assert"
)

func TestScoreTable(t *testing.T) {
	t.Parallel()

	table := readable.NewScoreTable()
	table.Add(7, 2.5)
	table.Add(3, 1)
	table.Add(7, 0.5)

	assert.Equal(t, 2, table.Len())
	assert.True(t, table.Has(7))
	assert.False(t, table.Has(9))
	assert.InDelta(t, 3.0, table.Score(7), 1e-9)
	assert.Zero(t, table.Score(9))
	assert.Equal(t, []readable.NodeID{7, 3}, table.Nodes())
}

func TestScoreTable_ZeroValue(t *testing.T) {
	t.Parallel()

	var table readable.ScoreTable
	assert.False(t, table.Has(1))
	assert.Zero(t, table.Score(1))

	table.Add(1, 4)
	table.Add(1, 1)

	assert.Equal(t, 1, table.Len())
	assert.InDelta(t, 5.0, table.Score(1), 1e-9)
	assert.Equal(t, []readable.NodeID{1}, table.Nodes())
}
