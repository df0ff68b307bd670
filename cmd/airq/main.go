// Command airq answers questions about Brazilian airport movements.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/airq/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
