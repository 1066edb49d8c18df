package main

import (
	"fmt"
	"os"

	"jobprep/api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.OpenStores).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
