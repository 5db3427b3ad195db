package rsmatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snp(id string) MatchedSNP {
	return MatchedSNP{Chromosome: "1", RsID: id, Position: 1, Allele1: "A", Allele2: "G"}
}

func TestAggregator_BatchOrder(t *testing.T) {
	t.Parallel()
	a := NewAggregator(4)

	// Fill out of order, as parallel workers would.
	require.NoError(t, a.Append(2, []MatchedSNP{snp("rs5")}))
	require.NoError(t, a.Append(0, []MatchedSNP{snp("rs1"), snp("rs2")}))
	require.NoError(t, a.Fail(1, errors.New("store down")))
	require.NoError(t, a.Append(3, nil))

	assert.Equal(t, ResultTable{snp("rs1"), snp("rs2"), snp("rs5")}, a.Table())
	assert.Equal(t, []int{1}, a.Failed())
}

func TestAggregator_NoDedup(t *testing.T) {
	t.Parallel()
	a := NewAggregator(2)
	require.NoError(t, a.Append(0, []MatchedSNP{snp("rs1")}))
	require.NoError(t, a.Append(1, []MatchedSNP{snp("rs1")}))
	assert.Len(t, a.Table(), 2)
}

func TestAggregator_Errors(t *testing.T) {
	t.Parallel()
	a := NewAggregator(1)
	assert.Error(t, a.Append(1, nil))
	assert.Error(t, a.Append(-1, nil))
	assert.Error(t, a.Fail(5, errors.New("x")))

	require.NoError(t, a.Append(0, nil))
	assert.Error(t, a.Append(0, nil), "slot already recorded")
}

func TestAggregator_UnrecordedAndEmpty(t *testing.T) {
	t.Parallel()
	a := NewAggregator(3)
	require.NoError(t, a.Append(1, []MatchedSNP{snp("rs9")}))
	assert.Equal(t, ResultTable{snp("rs9")}, a.Table())
	assert.Empty(t, a.Failed())

	assert.NotNil(t, NewAggregator(0).Table())
	assert.Empty(t, NewAggregator(0).Table())
}
