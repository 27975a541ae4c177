// Command scamshield is the client CLI for the scam-risk scoring service.
// Usage: scamshield scan "you won a prize" / scamshield history / scamshield stats
package main

import (
	"fmt"
	"os"

	"github.com/ayeshahabib/scamshield/internal/cli"
	"github.com/ayeshahabib/scamshield/internal/logging"
)

func main() {
	root := cli.NewRootCmd(logging.NewStdoutLogger("scamshield"))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
