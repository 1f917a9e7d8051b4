package main

import (
	"os"

	"github.com/msto63/puntofijo/cmd/puntofijo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
