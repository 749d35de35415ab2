package main

import (
	"os"

	"github.com/paperdeck/paperdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
