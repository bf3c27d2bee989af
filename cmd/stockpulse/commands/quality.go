package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [symbol]",
	Short: "Show the latest quality report for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  showQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)
}

func showQuality(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	symbol := args[0]
	report, err := a.store.LatestQualityReport(ctx, symbol)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("no quality report stored for %s", symbol)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
