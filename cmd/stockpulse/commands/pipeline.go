package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockpulse/platform/internal/record"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the extraction pipeline",
}

var pipelineRunCmd = &cobra.Command{
	Use:   "run [symbols...]",
	Short: "Process symbols through extract, validate, score and persist",
	Long: `Processes each symbol sequentially: extract from all sources,
clean, derive ratios and technical indicators, validate against the
rule set, score data quality and persist the document.

Without arguments the configured PIPELINE_SYMBOLS universe is used.
--sources restricts the run to a subset of source ids
(nse_bhavcopy, yfinance, screener_in); the default is all of them.

Example:
  go run ./cmd/stockpulse pipeline run RELIANCE TCS INFY
  go run ./cmd/stockpulse pipeline run --sources yfinance RELIANCE`,
	RunE: runPipeline,
}

var pipelineSources []string

func init() {
	rootCmd.AddCommand(pipelineCmd)
	pipelineCmd.AddCommand(pipelineRunCmd)
	pipelineRunCmd.Flags().StringSliceVar(&pipelineSources, "sources",
		nil, "comma-separated source ids to use (default: all)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	symbols := args
	if len(symbols) == 0 {
		symbols = a.cfg.Pipeline.Symbols
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given and PIPELINE_SYMBOLS is empty")
	}

	job := a.pipe.Run(ctx, symbols, pipelineSources)

	fmt.Printf("Job %s: %s (%d/%d succeeded, %s)\n",
		job.ID, job.Status, job.Succeeded, job.Total, job.Duration)
	for _, res := range job.Results {
		switch res.Status {
		case record.StatusFailed:
			fmt.Printf("  %-12s failed", res.Symbol)
			if len(res.Errors) > 0 {
				fmt.Printf(": %s", res.Errors[0])
			}
			fmt.Println()
		default:
			fmt.Printf("  %-12s score %.1f  complete %.1f%%  investable=%t  sources %d/%d\n",
				res.Symbol, res.OverallScore, res.Completeness, res.Investable,
				res.SourcesOK, res.SourcesOK+res.SourcesFailed)
		}
	}

	if job.Status == record.StatusFailed {
		return fmt.Errorf("pipeline run failed for all %d symbols", job.Total)
	}
	return nil
}
