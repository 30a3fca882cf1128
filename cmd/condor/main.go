package main

import (
	"os"

	"github.com/rustyeddy/condor/cmd/condor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
