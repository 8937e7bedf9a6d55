// Package griddata holds the in-memory model for a regular 2-D raster:
// values on a uniform grid, anchored to metric coordinates by the
// lower-left corner and the cell size, with a parallel mask marking
// cells that carry no valid measurement.
package griddata

import (
	"fmt"

	"github.com/paulmach/orb"
)

// GridData is a single scalar raster. Storage row 0 is the northernmost
// row (rows run north to south), columns run west to east. The origin
// anchors the lower-left corner of the lower-left cell, so the y
// coordinate of a row has to be computed against the bottom edge.
//
// A GridData is immutable after construction.
type GridData struct {
	origin   orb.Point
	cellSize float64
	values   [][]float64
	missing  [][]bool
}

// New builds a GridData from a rectangular value array. If missingValue
// is non-nil, every cell numerically equal to it is marked missing; the
// sentinel itself carries no meaning afterwards.
func New(origin orb.Point, cellSize float64, values [][]float64, missingValue *float64) (*GridData, error) {
	mask := make([][]bool, len(values))
	for i, row := range values {
		mask[i] = make([]bool, len(row))
		if missingValue == nil {
			continue
		}
		for j, v := range row {
			if v == *missingValue {
				mask[i][j] = true
			}
		}
	}

	return NewWithMask(origin, cellSize, values, mask)
}

// NewWithMask builds a GridData with an explicit missing-data mask. The
// mask must have exactly the same shape as the values.
func NewWithMask(origin orb.Point, cellSize float64, values [][]float64, mask [][]bool) (*GridData, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be greater than 0, got %v", cellSize)
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("raster must have at least one row and one column")
	}

	if len(mask) != len(values) {
		return nil, fmt.Errorf("mask has %d rows, values has %d", len(mask), len(values))
	}

	cols := len(values[0])
	for i, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, row 0 has %d", i, len(row), cols)
		}
		if len(mask[i]) != cols {
			return nil, fmt.Errorf("mask row %d has %d columns, values have %d", i, len(mask[i]), cols)
		}
	}

	return &GridData{
		origin:   origin,
		cellSize: cellSize,
		values:   values,
		missing:  mask,
	}, nil
}

// Shape returns the number of rows and columns of the raster.
func (g *GridData) Shape() (rows, cols int) {
	return len(g.values), len(g.values[0])
}

// At returns the raw value stored at storage row i, column j, regardless
// of mask state. Callers that need to tell real data from no-data must
// check IsMissing separately.
// It will panic if i or j are out of bounds for the grid.
func (g *GridData) At(i, j int) float64 {
	return g.values[i][j]
}

// IsMissing reports whether the cell at storage row i, column j holds no
// valid data.
// It will panic if i or j are out of bounds for the grid.
func (g *GridData) IsMissing(i, j int) bool {
	return g.missing[i][j]
}

// Origin returns the metric coordinate of the lower-left corner of the
// lower-left cell.
func (g *GridData) Origin() orb.Point {
	return g.origin
}

// CellSize returns the uniform spacing between grid lines in both axes.
func (g *GridData) CellSize() float64 {
	return g.cellSize
}

// X returns the metric x coordinate of the center of any cell in column j.
func (g *GridData) X(j int) float64 {
	return g.origin.X() + (float64(j)+0.5)*g.cellSize
}

// Y returns the metric y coordinate of the center of any cell in storage
// row i. Row 0 is the topmost row but the origin anchors the bottom edge,
// so the row index is counted from the last row.
func (g *GridData) Y(i int) float64 {
	rows := len(g.values)
	return g.origin.Y() + (float64(rows-1-i)+0.5)*g.cellSize
}

// Coord returns the metric coordinate of the center of cell (i, j).
func (g *GridData) Coord(i, j int) orb.Point {
	return orb.Point{g.X(j), g.Y(i)}
}

// Bounds returns the outer cell-edge extent of the raster.
func (g *GridData) Bounds() orb.Bound {
	rows, cols := g.Shape()
	return orb.Bound{
		Min: g.origin,
		Max: orb.Point{
			g.origin.X() + float64(cols)*g.cellSize,
			g.origin.Y() + float64(rows)*g.cellSize,
		},
	}
}
