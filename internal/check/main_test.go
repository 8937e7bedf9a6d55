package check

import (
	"os"
	"path"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/glaciertools/icegrid/internal/arcinfo"
	"github.com/glaciertools/icegrid/internal/griddata"
)

func writeGrid(t *testing.T, file string, origin orb.Point, cellSize float64, values [][]float64) {
	t.Helper()
	g, err := griddata.New(origin, cellSize, values, nil)
	require.NoError(t, err)
	require.NoError(t, arcinfo.WriteFile(file, g, -9999))
}

func TestRasterPaths(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, path.Join(dir, "thickness.asc"), orb.Point{0, 0}, 1, [][]float64{{1}})
	writeGrid(t, path.Join(dir, "surface.asc"), orb.Point{0, 0}, 1, [][]float64{{1}})
	require.NoError(t, writeFile(path.Join(dir, "notes.txt")))

	paths, err := rasterPaths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		path.Join(dir, "surface.asc"),
		path.Join(dir, "thickness.asc"),
	}, paths)
}

func writeFile(p string) error {
	return writeBytes(p, []byte("not a raster\n"))
}

func writeBytes(p string, data []byte) error {
	return os.WriteFile(p, data, 0o644)
}

func TestReadAllCollectsErrors(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, path.Join(dir, "thickness.asc"), orb.Point{0, 0}, 1, [][]float64{{1, 2}})
	require.NoError(t, writeBytes(path.Join(dir, "broken.asc"), []byte("ncols x\n")))

	paths, err := rasterPaths(dir)
	require.NoError(t, err)

	fields, errs := readAll(paths)
	require.Len(t, fields, 1)
	require.Len(t, errs, 1)
}

func TestSameGeometry(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, path.Join(dir, "thickness.asc"), orb.Point{0, 0}, 1, [][]float64{{1, 2}})
	writeGrid(t, path.Join(dir, "surface.asc"), orb.Point{0, 0}, 1, [][]float64{{3, 4}})

	paths, err := rasterPaths(dir)
	require.NoError(t, err)

	fields, errs := readAll(paths)
	require.Empty(t, errs)
	require.NoError(t, sameGeometry(fields))
}

func TestSameGeometryMismatch(t *testing.T) {
	cases := []struct {
		name   string
		origin orb.Point
		cell   float64
		values [][]float64
	}{
		{"shape", orb.Point{0, 0}, 1, [][]float64{{1, 2}, {3, 4}}},
		{"origin", orb.Point{5, 0}, 1, [][]float64{{1, 2}}},
		{"cellsize", orb.Point{0, 0}, 2, [][]float64{{1, 2}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeGrid(t, path.Join(dir, "thickness.asc"), orb.Point{0, 0}, 1, [][]float64{{1, 2}})
			writeGrid(t, path.Join(dir, "velocity_x.asc"), tc.origin, tc.cell, tc.values)

			paths, err := rasterPaths(dir)
			require.NoError(t, err)

			fields, errs := readAll(paths)
			require.Empty(t, errs)
			require.Error(t, sameGeometry(fields))
		})
	}
}
