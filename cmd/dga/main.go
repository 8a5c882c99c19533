// dga is a CLI for exploring DG algebra structures on resolutions of
// binomial edge ideals of complete graphs.
package main

import (
	"os"

	"github.com/commalg/dgares/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
