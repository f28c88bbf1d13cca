// Command popcharts renders world population charts.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/popcharts/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "popcharts:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
