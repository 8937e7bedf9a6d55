// Package contours implements the contours subcommand: it extracts
// iso-lines from a raster at a fixed interval and writes them as a
// GeoJSON FeatureCollection in the grid's metric coordinates.
package contours

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/semaphore"

	"github.com/glaciertools/icegrid/internal/arcinfo"
	"github.com/glaciertools/icegrid/internal/contour"
	"github.com/glaciertools/icegrid/internal/griddata"
)

// Run is the contours subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to Arc/Info ASCII grid (.asc or .asc.gz)")
	outputPtr := flagSet.String("out", "", "Path to output GeoJSON file")
	intervalPtr := flagSet.Float64("interval", 50, "Spacing between contour levels")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" || *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if *intervalPtr <= 0 {
		log.Fatal(fmt.Errorf("interval must be greater than 0, got %g", *intervalPtr))
	}

	timer = time.Now()
	fmt.Println("▶️  Loading raster")

	grid, err := arcinfo.ReadFile(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("✔️  Loaded raster in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Building contours")

	collection := buildContours(grid, *intervalPtr)

	fmt.Printf("✔️  Built %d contour lines in %s\n", len(collection.Features), time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing GeoJSON")

	if err := writeCollection(*outputPtr, collection); err != nil {
		log.Fatal(err)
	}

	fmt.Println("✔️  Wrote GeoJSON in", time.Since(timer).String())
	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// buildContours runs marching squares for every level in the valid value
// range, one goroutine per level, and collects the lines into a single
// feature collection tagged with their level.
func buildContours(grid *griddata.GridData, interval float64) *geojson.FeatureCollection {
	min, max, any := valueRange(grid)

	collection := geojson.NewFeatureCollection()
	if !any {
		return collection
	}

	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for level := math.Ceil(min/interval) * interval; level < max; level += interval {
		wg.Add(1)
		go func(level float64) {
			defer wg.Done()

			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			lines := contour.Lines(grid, level)

			mu.Lock()
			defer mu.Unlock()
			for i := 0; i < len(lines); i++ {
				f := geojson.NewFeature(lines[i])
				f.Properties["elevation"] = level
				collection.Append(f)
			}
		}(level)
	}
	wg.Wait()

	return collection
}

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

func writeCollection(path string, collection *geojson.FeatureCollection) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
