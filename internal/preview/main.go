package preview

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path"
	"time"

	"github.com/nfnt/resize"

	"github.com/glaciertools/icegrid/internal/arcinfo"
	"github.com/glaciertools/icegrid/internal/utils"
)

var sizes = []uint{128, 256, 512, 1024}

// Run is the preview subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to Arc/Info ASCII grid (.asc or .asc.gz)")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(*outputPtr) {
		log.Fatal(errors.New("Output directory doesn't exist"))
	}

	timer = time.Now()
	fmt.Println("▶️  Loading raster")

	grid, err := arcinfo.ReadFile(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}

	rows, cols := grid.Shape()
	fmt.Printf("✔️  Loaded %dx%d raster in %s\n", rows, cols, time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing full-size preview image")

	previewImage := Render(grid)
	saveImage(path.Join(*outputPtr, "preview.png"), previewImage)

	fmt.Println("✔️  Wrote full-size preview image in", time.Since(timer).String())

	for _, size := range sizes {
		timer = time.Now()
		fmt.Printf("▶️  Building x%d image\n", size)

		factor := float64(size) / float64(rows)
		w := uint(float64(cols) * factor)

		img := resize.Resize(w, size, previewImage, resize.MitchellNetravali)
		saveImage(path.Join(*outputPtr, fmt.Sprintf("preview_%d.png", size)), img)

		fmt.Printf("✔️  Built x%d in %s\n", size, time.Since(timer).String())
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

func saveImage(path string, img image.Image) {
	out, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	png.Encode(out, img)

	err = out.Close()
	if err != nil {
		log.Fatal(err)
	}
}
