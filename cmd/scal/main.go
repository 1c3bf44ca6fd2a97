package main

import (
	"os"

	"github.com/msto63/scaliger/cmd/scal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
