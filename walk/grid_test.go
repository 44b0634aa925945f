package walk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrid_ChunksPerAxis(t *testing.T) {
	g, err := NewGrid([]int64{10, 5}, []int64{4, 5})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1}, g.ChunksPerAxis())
	require.Equal(t, int64(3), g.Total())
}

func TestGrid_CoordIndexRoundTrip(t *testing.T) {
	g, err := NewGrid([]int64{10, 9}, []int64{4, 3})
	require.NoError(t, err)

	for idx := int64(0); idx < g.Total(); idx++ {
		coord := g.Coord(idx)
		require.Equal(t, idx, g.Index(coord))
	}
}

func TestGrid_ExtentPartialFinalChunk(t *testing.T) {
	g, err := NewGrid([]int64{10}, []int64{4})
	require.NoError(t, err)

	require.Equal(t, []int64{4}, g.Extent([]int64{0}))
	require.Equal(t, []int64{4}, g.Extent([]int64{1}))
	require.Equal(t, []int64{2}, g.Extent([]int64{2}))
}

func TestNewGrid_Rejects(t *testing.T) {
	_, err := NewGrid(nil, nil)
	require.Error(t, err)

	_, err = NewGrid([]int64{0}, []int64{1})
	require.Error(t, err)

	_, err = NewGrid([]int64{4}, []int64{4, 4})
	require.Error(t, err)

	_, err = NewGrid([]int64{4}, []int64{0})
	require.Error(t, err)
}
