package main

import (
	"os"

	"github.com/lavanderia/laundries-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
