// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/stockpulse/platform/internal/pipeline"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/logger"
)

// PipelineRun executes the full extraction pipeline for a fixed
// symbol universe after market close.
type PipelineRun struct {
	pipe     *pipeline.Pipeline
	symbols  []string
	schedule string
	log      *logger.Logger
}

// NewPipelineRun creates the daily pipeline job.
func NewPipelineRun(pipe *pipeline.Pipeline, symbols []string, schedule string, log *logger.Logger) *PipelineRun {
	if log == nil {
		log = logger.Nop()
	}
	return &PipelineRun{pipe: pipe, symbols: symbols, schedule: schedule, log: log}
}

func (j *PipelineRun) Name() string { return "daily_pipeline" }

func (j *PipelineRun) Schedule() string { return j.schedule }

// Run processes the configured universe. A run where every symbol
// failed counts as a job failure so the scheduler retries it.
func (j *PipelineRun) Run(ctx context.Context) error {
	if len(j.symbols) == 0 {
		j.log.Warn("No symbols configured, skipping pipeline run")
		return nil
	}
	job := j.pipe.Run(ctx, j.symbols, nil)
	if job.Status == record.StatusFailed {
		return fmt.Errorf("pipeline job %s: all %d symbols failed", job.ID, job.Total)
	}
	return nil
}
