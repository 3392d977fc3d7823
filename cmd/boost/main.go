// Command boost is the command line front end for the grant engine.
package main

import (
	"fmt"
	"os"

	"github.com/riftgate/boost/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
