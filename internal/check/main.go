// Package check implements the check subcommand: it parses every raster
// in a directory of observational fields and verifies they all share one
// grid geometry, so they can be sampled onto the same model grid.
package check

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/glaciertools/icegrid/internal/arcinfo"
	"github.com/glaciertools/icegrid/internal/griddata"
	"github.com/glaciertools/icegrid/internal/utils"
)

// Run is the check subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to directory of Arc/Info ASCII grids")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if !utils.IsDirectory(*inputPtr) {
		log.Fatal(fmt.Errorf("%s does not exist or is no directory", *inputPtr))
	}

	paths, err := rasterPaths(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal(fmt.Errorf("%s contains no .asc or .asc.gz files", *inputPtr))
	}

	fmt.Printf("▶️  Checking %d fields\n", len(paths))

	fields, errs := readAll(paths)
	for _, err := range errs {
		fmt.Println("❌ ", err)
	}
	if len(errs) > 0 {
		log.Fatal(fmt.Errorf("%d of %d fields failed to parse", len(errs), len(paths)))
	}

	if err := sameGeometry(fields); err != nil {
		log.Fatal(err)
	}

	rows, cols := fields[paths[0]].Shape()
	fmt.Printf("✔️  All %d fields share one %dx%d grid (checked in %s)\n",
		len(paths), rows, cols, time.Since(start).String())
}

// rasterPaths lists the .asc and .asc.gz files directly inside dir,
// sorted for stable output.
func rasterPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".asc") || strings.HasSuffix(name, ".asc.gz") {
			paths = append(paths, path.Join(dir, name))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// readAll parses all given rasters concurrently and returns the parsed
// fields keyed by path, plus every parse failure.
func readAll(paths []string) (map[string]*griddata.GridData, []error) {
	fields := make(map[string]*griddata.GridData, len(paths))
	errs := []error{}

	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for _, p := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()

			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			grid, err := arcinfo.ReadFile(p)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			fields[p] = grid
		}(p)
	}
	wg.Wait()

	return fields, errs
}

// sameGeometry verifies every field has the same shape, origin and cell
// size as the first one (in path order).
func sameGeometry(fields map[string]*griddata.GridData) error {
	paths := make([]string, 0, len(fields))
	for p := range fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	ref := fields[paths[0]]
	refRows, refCols := ref.Shape()

	for _, p := range paths[1:] {
		g := fields[p]
		rows, cols := g.Shape()
		if rows != refRows || cols != refCols {
			return errors.Errorf("%s is %dx%d, %s is %dx%d", p, rows, cols, paths[0], refRows, refCols)
		}
		if g.Origin() != ref.Origin() || g.CellSize() != ref.CellSize() {
			return errors.Errorf("%s has origin (%g, %g) cellsize %g, %s has origin (%g, %g) cellsize %g",
				p, g.Origin().X(), g.Origin().Y(), g.CellSize(),
				paths[0], ref.Origin().X(), ref.Origin().Y(), ref.CellSize())
		}
	}

	return nil
}
