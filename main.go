package main

import (
	"os"

	"github.com/autocare/autocare/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
