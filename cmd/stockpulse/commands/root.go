package commands

import (
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse - per-security market data pipeline for Indian equities",
	Long: `StockPulse CLI

Extracts price, fundamental and shareholding data from NSE, Yahoo
Finance and screener.in, derives ratios and technical indicators,
validates against the rule set and scores data quality.

Usage:
  go run ./cmd/stockpulse [command]

Examples:
  go run ./cmd/stockpulse pipeline run RELIANCE TCS INFY
  go run ./cmd/stockpulse scheduler start
  go run ./cmd/stockpulse quality RELIANCE`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
