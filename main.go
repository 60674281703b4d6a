package main

import (
	"os"

	"github.com/greenloop/biolca/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
