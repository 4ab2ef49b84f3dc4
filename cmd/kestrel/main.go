package main

import (
	"os"

	"github.com/kestrelkit/kestrel/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.SaveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
