package main

import (
	"os"

	"github.com/civicledger/munibudget/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
