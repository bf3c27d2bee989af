package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockpulse/platform/internal/scheduler"
	"github.com/stockpulse/platform/internal/scheduler/jobs"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the scheduled pipeline runs",
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and runs the pipeline for the configured
PIPELINE_SYMBOLS universe on the PIPELINE_CRON schedule (default
weekdays at 18:30, after NSE publishes the bhavcopy).

Stop with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler(ctx context.Context) (*scheduler.Scheduler, *app, error) {
	a, err := initApp(ctx)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(a.log)
	job := jobs.NewPipelineRun(a.pipe, a.cfg.Pipeline.Symbols, a.cfg.Pipeline.CronSpec, a.log)
	if err := sched.AddJob(job); err != nil {
		a.Close()
		return nil, nil, err
	}
	return sched, a, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sched, a, err := initScheduler(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down scheduler...")
	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println("Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	name := args[0]
	fmt.Printf("Running job: %s\n", name)
	if err := sched.RunNow(name); err != nil {
		return err
	}

	h, err := sched.History(name)
	if err != nil {
		return err
	}
	if results := h.Latest(1); len(results) == 1 && !results[0].Success {
		return fmt.Errorf("job %s failed: %s", name, results[0].Error)
	}
	fmt.Println("Job completed")
	return nil
}
