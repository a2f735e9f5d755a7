// Command recreation is the command-line client of the recreation potential
// engine.
package main

import (
	"os"

	"github.com/turtacn/recreation-potential/internal/interfaces/cli"
)

func main() {
	// Execute prints the error itself
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
