package main

import (
	"fmt"
	"os"

	"github.com/anonivate/anoni/cmd/anoni"
)

func main() {
	if err := anoni.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
