package main

import (
	"os"

	"github.com/synthdata/bankgen/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
