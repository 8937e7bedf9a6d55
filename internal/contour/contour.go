// Package contour extracts iso-lines from a GridData with the marching
// squares algorithm. Segments are emitted in metric coordinates (cell
// centers are the sample points) and stitched into polylines.
package contour

import (
	"github.com/paulmach/orb"

	"github.com/glaciertools/icegrid/internal/griddata"
)

// Lines calculates the contour lines of g at the given level. Cells with
// any missing corner contribute no segments, so contours stop at the
// edge of the valid data.
func Lines(g *griddata.GridData, level float64) []orb.LineString {
	rows, cols := g.Shape()
	lines := []orb.LineString{}

	for row := 0; row < rows-1; row++ {
		for col := 0; col < cols-1; col++ {
			newLines := cellLines(g, row, col, level)

			for _, newLine := range newLines {
				// find all lines which can be combined with newLine
				combinableIndices := []int{}
				for j := 0; j < len(lines); j++ {
					canCombine, _ := canCombineLines(newLine, lines[j])

					if canCombine {
						combinableIndices = append(combinableIndices, j)

						if len(combinableIndices) == 2 {
							break
						}
					}
				}

				if len(combinableIndices) == 0 {
					lines = append(lines, newLine)
				} else {
					combinedLine := newLine
					for _, index := range combinableIndices {
						_, combinedLine = combineLines(combinedLine, lines[index])
					}

					lines[combinableIndices[0]] = combinedLine

					if len(combinableIndices) == 2 {
						// remove the now-merged line
						lines[combinableIndices[1]] = lines[len(lines)-1]
						lines[len(lines)-1] = nil
						lines = lines[:len(lines)-1]
					}
				}
			}
		}
	}

	return lines
}

func cellLines(g *griddata.GridData, row, col int, level float64) []orb.LineString {
	if g.IsMissing(row, col) || g.IsMissing(row, col+1) ||
		g.IsMissing(row+1, col) || g.IsMissing(row+1, col+1) {
		return nil
	}

	tlValue := g.At(row, col)
	trValue := g.At(row, col+1)
	brValue := g.At(row+1, col+1)
	blValue := g.At(row+1, col)

	leftX := g.X(col)
	rightX := g.X(col + 1)
	topY := g.Y(row)
	bottomY := g.Y(row + 1)

	// marching squares case index
	index := 0
	if tlValue > level {
		index |= 8
	}
	if trValue > level {
		index |= 4
	}
	if brValue > level {
		index |= 2
	}
	if blValue > level {
		index |= 1
	}

	topEdgePoint := func() orb.Point {
		return orb.Point{interpolate(leftX, tlValue, rightX, trValue, level), topY}
	}
	leftEdgePoint := func() orb.Point {
		return orb.Point{leftX, interpolate(bottomY, blValue, topY, tlValue, level)}
	}
	bottomEdgePoint := func() orb.Point {
		return orb.Point{interpolate(leftX, blValue, rightX, brValue, level), bottomY}
	}
	rightEdgePoint := func() orb.Point {
		return orb.Point{rightX, interpolate(bottomY, brValue, topY, trValue, level)}
	}

	switch index {
	case 1, 14:
		return []orb.LineString{{bottomEdgePoint(), leftEdgePoint()}}
	case 2, 13:
		return []orb.LineString{{rightEdgePoint(), bottomEdgePoint()}}
	case 3, 12:
		return []orb.LineString{{rightEdgePoint(), leftEdgePoint()}}
	case 4, 11:
		return []orb.LineString{{topEdgePoint(), rightEdgePoint()}}
	case 5:
		return []orb.LineString{
			{leftEdgePoint(), topEdgePoint()},
			{bottomEdgePoint(), rightEdgePoint()},
		}
	case 6, 9:
		return []orb.LineString{{topEdgePoint(), bottomEdgePoint()}}
	case 7, 8:
		return []orb.LineString{{leftEdgePoint(), topEdgePoint()}}
	case 10:
		return []orb.LineString{
			{leftEdgePoint(), bottomEdgePoint()},
			{topEdgePoint(), rightEdgePoint()},
		}
	}

	// cases 0 and 15: all corners on one side, no crossing
	return nil
}

func interpolate(c0, v0, c1, v1, level float64) float64 {
	return (c0*(v1-level) + c1*(level-v0)) / (v1 - v0)
}

// canCombineLines checks whether two lines share an endpoint (second bool
// is whether l2, l1 have to be swapped to be combined)
func canCombineLines(l1 orb.LineString, l2 orb.LineString) (bool, bool) {
	len1 := len(l1) - 1
	len2 := len(l2) - 1

	if l1[len1].Equal(l2[0]) {
		return true, false
	}

	if l2[len2].Equal(l1[0]) {
		return true, true
	}

	l2.Reverse()

	if l1[len1].Equal(l2[0]) {
		return true, false
	}

	if l2[len2].Equal(l1[0]) {
		return true, true
	}

	return false, false
}

// combineLines merges l1 and l2 if they share an endpoint. If they do,
// the combined line is returned.
func combineLines(l1 orb.LineString, l2 orb.LineString) (bool, orb.LineString) {
	canCombine, swapped := canCombineLines(l1, l2)

	if !canCombine {
		return false, nil
	}

	if swapped {
		return true, stitchLines(l2, l1)
	}

	return true, stitchLines(l1, l2)
}

// stitchLines appends all points of line2 (except the first one) to line1
func stitchLines(line1 orb.LineString, line2 orb.LineString) orb.LineString {
	// 1 because the last point of line1 equals the first point of line2
	for i := 1; i < len(line2); i++ {
		line1 = append(line1, line2[i])
	}

	return line1
}
