package main

import (
	"fmt"
	"os"

	"github.com/jw-y/pklgen/cmd/pklgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pklgen: %v\n", err)
		os.Exit(1)
	}
}
