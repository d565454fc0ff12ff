package main

import (
	"os"

	"splitbook/cmd/splitbook/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
