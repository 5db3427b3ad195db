package rsmatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_TSV(t *testing.T) {
	t.Parallel()
	in := "chr\tpos\tA1\tA2\n1\t100\tA\tG\n2\t200\tC\tT\n"
	tbl, err := ReadTable(strings.NewReader(in), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"chr", "pos", "A1", "A2"}, tbl.Columns)
	assert.Equal(t, [][]string{{"1", "100", "A", "G"}, {"2", "200", "C", "T"}}, tbl.Rows)
	assert.Equal(t, 2, tbl.ColumnIndex("A1"))
	assert.Equal(t, -1, tbl.ColumnIndex("rsID"))
}

func TestReadTable_CSVWithQuotes(t *testing.T) {
	t.Parallel()
	in := "chr,pos,A1,A2\n1,100,\"A,C\",G'\n"
	tbl, err := ReadTable(strings.NewReader(in), ',')
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "100", "A,C", "G'"}}, tbl.Rows)
}

func TestReadTable_HeaderOnly(t *testing.T) {
	t.Parallel()
	tbl, err := ReadTable(strings.NewReader("chr\tpos\tA1\tA2\n"), '\t')
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}

func TestReadTable_Empty(t *testing.T) {
	t.Parallel()
	_, err := ReadTable(strings.NewReader(""), '\t')
	var se *SchemaError
	require.ErrorAs(t, err, &se)
}

func TestReadTable_RaggedRow(t *testing.T) {
	t.Parallel()
	_, err := ReadTable(strings.NewReader("chr\tpos\tA1\tA2\n1\t100\tA\n"), '\t')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}
