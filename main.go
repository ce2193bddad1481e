package main

import (
	"os"

	"github.com/vigilstack/vigil/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
