// Command vireo-bench exercises the higher-order array functions over
// synthetic blocks of array data and reports timings.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
)

func main() {
	app := kingpin.New("vireo-bench", "A command-line tool to benchmark the array function engine.")
	addListCommand(app)
	addRunCommand(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func exitWithErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
