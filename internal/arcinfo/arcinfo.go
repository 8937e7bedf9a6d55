// Package arcinfo reads and writes rasters in the Arc/Info ASCII grid
// format: a six-line header (ncols, nrows, xllcorner, yllcorner, cellsize,
// NODATA_value) followed by one line of space-separated values per row.
// The first data row on disk is the southernmost row of the area, while
// GridData stores rows north to south, so both paths go through the same
// row-order inversion.
package arcinfo

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/glaciertools/icegrid/internal/griddata"
)

// CRESIS grids go well past the default bufio.Scanner line limit.
const maxLineBytes = 16 << 20

// storageRow maps between the on-disk data row order (south to north)
// and the in-memory storage order (north to south). The mapping is its
// own inverse, so read and write share it.
func storageRow(nrows, diskRow int) int {
	return nrows - 1 - diskRow
}

// Read parses an Arc/Info ASCII grid from r. The six header values are
// taken positionally (second whitespace field of each line); the keyword
// text is deliberately not matched, so a header with reordered keywords
// but values in the documented order still parses. Cells equal to the
// NODATA_value are masked in the returned GridData.
//
// The reader does not close r; stream lifecycle belongs to the caller.
func Read(r io.Reader) (*griddata.GridData, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineBytes)

	headerField := func(line int) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", &HeaderError{Line: line, Err: err}
			}
			return "", &HeaderError{Line: line, Err: io.ErrUnexpectedEOF}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return "", &HeaderError{Line: line, Err: fmt.Errorf("expected '<keyword> <value>', got %q", sc.Text())}
		}
		return fields[1], nil
	}

	headerInt := func(line int) (int, error) {
		field, err := headerField(line)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return 0, &HeaderError{Line: line, Err: err}
		}
		return v, nil
	}

	headerFloat := func(line int) (float64, error) {
		field, err := headerField(line)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, &HeaderError{Line: line, Err: err}
		}
		return v, nil
	}

	ncols, err := headerInt(1)
	if err != nil {
		return nil, err
	}
	nrows, err := headerInt(2)
	if err != nil {
		return nil, err
	}
	xllcorner, err := headerFloat(3)
	if err != nil {
		return nil, err
	}
	yllcorner, err := headerFloat(4)
	if err != nil {
		return nil, err
	}
	cellsize, err := headerFloat(5)
	if err != nil {
		return nil, err
	}
	if cellsize <= 0 {
		return nil, &HeaderError{Line: 5, Err: fmt.Errorf("cellsize must be greater than 0, got %v", cellsize)}
	}
	nodata, err := headerFloat(6)
	if err != nil {
		return nil, err
	}

	if ncols < 1 || nrows < 1 {
		return nil, &HeaderError{Line: 1, Err: fmt.Errorf("grid must have at least one row and one column, got %dx%d", nrows, ncols)}
	}

	values := make([][]float64, nrows)
	for disk := 0; disk < nrows; disk++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, &RowError{Row: disk + 1, Err: err}
			}
			return nil, &TruncatedError{Rows: disk, Want: nrows}
		}

		fields := strings.Fields(sc.Text())
		if len(fields) != ncols {
			return nil, &RowError{Row: disk + 1, Err: fmt.Errorf("expected %d values, got %d", ncols, len(fields))}
		}

		row := make([]float64, ncols)
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &RowError{Row: disk + 1, Err: err}
			}
			row[j] = v
		}

		values[storageRow(nrows, disk)] = row
	}

	return griddata.New(orb.Point{xllcorner, yllcorner}, cellsize, values, &nodata)
}

// Write serializes g to w in the Arc/Info ASCII grid layout, emitting
// missing for every masked cell regardless of the value stored there.
// Rows are written south to north, undoing the storage inversion so a
// read/write round trip reproduces the original file modulo float
// formatting.
//
// The writer does not close w; stream lifecycle belongs to the caller.
func Write(w io.Writer, g *griddata.GridData, missing float64) error {
	rows, cols := g.Shape()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-16s%d\n", "ncols", cols)
	fmt.Fprintf(bw, "%-16s%d\n", "nrows", rows)
	fmt.Fprintf(bw, "%-16s%s\n", "xllcorner", formatValue(g.Origin().X()))
	fmt.Fprintf(bw, "%-16s%s\n", "yllcorner", formatValue(g.Origin().Y()))
	fmt.Fprintf(bw, "%-16s%s\n", "cellsize", formatValue(g.CellSize()))
	fmt.Fprintf(bw, "%-16s%s\n", "NODATA_value", formatValue(missing))

	for disk := 0; disk < rows; disk++ {
		i := storageRow(rows, disk)
		for j := 0; j < cols; j++ {
			v := g.At(i, j)
			if g.IsMissing(i, j) {
				v = missing
			}
			bw.WriteString(formatValue(v))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadFile opens path and parses it as an Arc/Info ASCII grid. Files
// ending in .gz are decompressed transparently. The file is closed on
// every exit path.
func ReadFile(path string) (*griddata.GridData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		defer gz.Close()
		r = gz
	}

	grid, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return grid, nil
}

// WriteFile creates path (truncating any existing file) and writes g to
// it with the given missing-data sentinel.
func WriteFile(path string, g *griddata.GridData, missing float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(file, g, missing); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", path)
	}

	return errors.Wrapf(file.Close(), "writing %s", path)
}
