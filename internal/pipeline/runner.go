package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wranglecli/internal/infrastructure"
)

// Runner executes stages strictly in order over one shared State. The first
// stage error aborts the remaining stages and is returned wrapped with the
// failing stage's ID.
type Runner struct {
	logger *slog.Logger
	stages []Stage
}

// NewRunner creates a runner over the given stages. A nil logger falls back
// to the default logger.
func NewRunner(logger *slog.Logger, stages ...Stage) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger: infrastructure.WithComponent(logger, "pipeline"),
		stages: stages,
	}
}

// Execute runs every stage in order and returns the final state. The context
// gains a run ID that the logging layer stamps onto each record; a context
// already carrying one keeps it. Cancellation between stages aborts the run.
func (r *Runner) Execute(ctx context.Context) (*State, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.RunIDFromContext(ctx)
	state := NewState(runID)

	started := time.Now()
	r.logger.InfoContext(ctx, "pipeline_started",
		slog.String("run_id", runID),
		slog.Int("stage_count", len(r.stages)))

	for i, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			r.logger.WarnContext(ctx, "pipeline_cancelled",
				slog.String("stage", stage.ID()),
				slog.Int("stage_number", i+1))
			return state, fmt.Errorf("pipeline cancelled before stage %s: %w", stage.ID(), err)
		}

		r.logger.InfoContext(ctx, "stage_started",
			slog.String("stage", stage.ID()),
			slog.String("name", stage.Name()),
			slog.Int("stage_number", i+1),
			slog.Int("total_stages", len(r.stages)))

		stageStarted := time.Now()
		if err := stage.Run(ctx, state); err != nil {
			r.logger.ErrorContext(ctx, "stage_failed",
				slog.String("stage", stage.ID()),
				slog.Duration("duration", time.Since(stageStarted)),
				slog.String("error", err.Error()))
			return state, fmt.Errorf("stage %s: %w", stage.ID(), err)
		}

		r.logger.InfoContext(ctx, "stage_completed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", time.Since(stageStarted)))
	}

	r.logger.InfoContext(ctx, "pipeline_completed",
		slog.String("run_id", runID),
		slog.Int("stage_count", len(r.stages)),
		slog.Duration("duration", time.Since(started)))
	return state, nil
}
