// Command ledlayout places LED modules in channel-letter outlines from the
// command line: render text to outlines, compute placements, validate
// free-hand path edits, and estimate power loads.
package main

import (
	"os"

	"github.com/signkit/ledlayout/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
