// sv is the Sampling Visualizer CLI.
package main

import (
	"os"

	"github.com/cloudchase/sampling-visualizer/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:], os.Stdout, os.Stderr))
}
