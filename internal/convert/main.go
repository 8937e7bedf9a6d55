// Package convert implements the convert subcommand: it reads an Arc/Info
// ASCII grid and rewrites it with a different NODATA sentinel. Masked
// cells stay masked across the rewrite whatever sentinel they were read
// with.
package convert

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glaciertools/icegrid/internal/arcinfo"
)

// Run is the convert subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to input Arc/Info ASCII grid (.asc or .asc.gz)")
	outputPtr := flagSet.String("out", "", "Path to output Arc/Info ASCII grid")
	nodataPtr := flagSet.Float64("nodata", -9999, "NODATA sentinel to write")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" || *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	grid, err := arcinfo.ReadFile(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}

	if err := arcinfo.WriteFile(*outputPtr, grid, *nodataPtr); err != nil {
		log.Fatal(err)
	}

	rows, cols := grid.Shape()
	fmt.Printf("✔️  Rewrote %dx%d raster with NODATA %g in %s\n", rows, cols, *nodataPtr, time.Since(start).String())
}
