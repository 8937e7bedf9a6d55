// Package info implements the info subcommand: it prints the placement
// and value statistics of a single Arc/Info ASCII grid.
package info

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glaciertools/icegrid/internal/arcinfo"
	"github.com/glaciertools/icegrid/internal/griddata"
)

// Run is the info subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	inputPtr := flagSet.String("in", "", "Path to Arc/Info ASCII grid (.asc or .asc.gz)")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	grid, err := arcinfo.ReadFile(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}

	rows, cols := grid.Shape()
	bounds := grid.Bounds()

	fmt.Printf("%-12s%s\n", "file", *inputPtr)
	fmt.Printf("%-12s%d rows x %d columns\n", "shape", rows, cols)
	fmt.Printf("%-12s(%g, %g)\n", "origin", grid.Origin().X(), grid.Origin().Y())
	fmt.Printf("%-12s%g\n", "cellsize", grid.CellSize())
	fmt.Printf("%-12s(%g, %g) - (%g, %g)\n", "extent",
		bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), bounds.Max.Y())

	valid, missing, min, max, mean := stats(grid)
	fmt.Printf("%-12s%d valid, %d missing\n", "cells", valid, missing)
	if valid > 0 {
		fmt.Printf("%-12smin %g, max %g, mean %g\n", "values", min, max, mean)
	}
}

func stats(g *griddata.GridData) (valid, missing int, min, max, mean float64) {
	rows, cols := g.Shape()

	sum := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if g.IsMissing(i, j) {
				missing++
				continue
			}

			v := g.At(i, j)
			if valid == 0 || v < min {
				min = v
			}
			if valid == 0 || v > max {
				max = v
			}
			sum += v
			valid++
		}
	}

	if valid > 0 {
		mean = sum / float64(valid)
	}

	return
}
