package main

import (
	"os"

	"github.com/ddc-bot/democtl/cmd/democtl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
