package main

import (
	"os"

	"github.com/lajournal/lajournal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
