package preview

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/glaciertools/icegrid/internal/griddata"
)

func TestRenderScalesValidRange(t *testing.T) {
	missing := -9999.0
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{
		{0, 100},
		{50, -9999},
	}, &missing)
	require.NoError(t, err)

	img := Render(g)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// storage row 0 is the top image row; the sentinel is ignored when
	// scaling, so the range is 0..100
	require.Equal(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(1, 0))
	require.Equal(t, color.NRGBA{127, 127, 127, 255}, img.NRGBAAt(0, 1))

	// masked cell renders transparent
	require.Equal(t, color.NRGBA{}, img.NRGBAAt(1, 1))
}

func TestRenderFlatGrid(t *testing.T) {
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{{7, 7}}, nil)
	require.NoError(t, err)

	img := Render(g)
	require.Equal(t, color.NRGBA{127, 127, 127, 255}, img.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{127, 127, 127, 255}, img.NRGBAAt(1, 0))
}

func TestRenderAllMissing(t *testing.T) {
	missing := -9999.0
	g, err := griddata.New(orb.Point{0, 0}, 1, [][]float64{{-9999}}, &missing)
	require.NoError(t, err)

	img := Render(g)
	require.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
}
