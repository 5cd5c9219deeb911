package main

import (
	"os"

	"github.com/msto63/khamseena/cmd/khc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
