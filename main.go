package main

import (
	"os"

	"github.com/edgecharge/mcsd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
