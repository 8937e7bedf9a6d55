package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glaciertools/icegrid/internal/check"
	"github.com/glaciertools/icegrid/internal/contours"
	"github.com/glaciertools/icegrid/internal/convert"
	"github.com/glaciertools/icegrid/internal/info"
	"github.com/glaciertools/icegrid/internal/preview"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"info", "Print placement and value statistics of a raster.", info.Run},
		{"check", "Verify a directory of observational fields shares one grid.", check.Run},
		{"convert", "Rewrite a raster with a different NODATA sentinel.", convert.Run},
		{"contours", "Extract contour lines from a raster as GeoJSON.", contours.Run},
		{"preview", "Render preview images of a raster.", preview.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for i := 0; i < len(subCommands); i++ {
		name := subCommands[i].name

		fmt.Printf("%12s    %s\n", name, subCommands[i].description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	for i := 0; i < len(subCommands); i++ {
		if subCommands[i].name == cmd {
			set := flag.NewFlagSet(cmd, flag.ExitOnError)
			subCommands[i].run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", cmd)
	printUsage()
}
