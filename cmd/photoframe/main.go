package main

import (
	"os"

	"github.com/youruser/photoframe/cmd/photoframe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
