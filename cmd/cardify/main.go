package main

import (
	"os"

	"github.com/bytemouse/cardify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
