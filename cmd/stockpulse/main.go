package main

import (
	"os"

	"github.com/stockpulse/platform/cmd/stockpulse/commands"
)

// main is the entry point for the StockPulse CLI:
// go run ./cmd/stockpulse [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
