package main

import (
	"os"

	"github.com/penwyp/go-track-replay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
