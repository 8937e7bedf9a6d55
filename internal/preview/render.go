package preview

import (
	"image"
	"image/color"

	"github.com/glaciertools/icegrid/internal/griddata"
)

// Render rasterizes g into a grayscale image, one pixel per cell, scaling
// the valid value range to 0..255. Missing cells come out fully
// transparent so gaps in the observations stay visible.
func Render(g *griddata.GridData) *image.NRGBA {
	rows, cols := g.Shape()

	min, max, any := valueRange(g)

	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.IsMissing(i, j) {
				img.SetNRGBA(j, i, color.NRGBA{})
				continue
			}

			gray := uint8(127)
			if any && max > min {
				gray = uint8(255 * (g.At(i, j) - min) / (max - min))
			}
			img.SetNRGBA(j, i, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}

	return img
}

// valueRange returns the min and max over valid cells. The bool is false
// when every cell is masked.
func valueRange(g *griddata.GridData) (float64, float64, bool) {
	rows, cols := g.Shape()

	var min, max float64
	any := false
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.IsMissing(i, j) {
				continue
			}

			v := g.At(i, j)
			if !any || v < min {
				min = v
			}
			if !any || v > max {
				max = v
			}
			any = true
		}
	}

	return min, max, any
}
