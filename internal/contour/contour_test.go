package contour

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/glaciertools/icegrid/internal/griddata"
)

func TestSingleCellCrossing(t *testing.T) {
	// only the south-east corner is above the level
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{
		{0, 0},
		{0, 10},
	}, nil)
	require.NoError(t, err)

	lines := Lines(g, 5)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 2)

	// crossing halfway between the corner centers
	require.Equal(t, orb.Point{1.5, 1.0}, lines[0][0])
	require.Equal(t, orb.Point{1.0, 0.5}, lines[0][1])
}

func TestSegmentsAreStitched(t *testing.T) {
	// level crossing runs horizontally through both cells, so the two
	// segments must come back as one polyline
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{
		{0, 0, 0},
		{10, 10, 10},
	}, nil)
	require.NoError(t, err)

	lines := Lines(g, 5)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 3)

	for _, p := range lines[0] {
		require.Equal(t, 1.0, p.Y())
	}
}

func TestMissingCornerSuppressesCell(t *testing.T) {
	g, err := griddata.NewWithMask(orb.Point{0, 0}, 1, [][]float64{
		{0, 0},
		{0, 10},
	}, [][]bool{
		{false, true},
		{false, false},
	})
	require.NoError(t, err)

	require.Empty(t, Lines(g, 5))
}

func TestNoCrossing(t *testing.T) {
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{
		{1, 1},
		{1, 1},
	}, nil)
	require.NoError(t, err)

	require.Empty(t, Lines(g, 5))
	require.Empty(t, Lines(g, 0))
}
