// Command normalize strips the "NN-" ordering prefix from the .wav files in
// every subdirectory of the current directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"saytime/log"
	"saytime/normalize"
)

func main() {
	dryRun := flag.Bool("n", false, "Print the renames without performing them")
	flag.Parse()

	log.InitConsole(os.Stderr)

	renames, err := normalize.Run(".", normalize.Options{DryRun: *dryRun})
	if *dryRun {
		for _, r := range renames {
			fmt.Printf("%s/%s -> %s\n", r.Dir, r.From, r.To)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
