package main

import (
	"os"

	"github.com/gecko-lang/gecko/cmd/gecko/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
