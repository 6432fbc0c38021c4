package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bookfold/bookfold/pkg/errors"
	"github.com/bookfold/bookfold/pkg/observability"
)

// Runner executes the booklet pipeline.
//
// The Runner is stateless apart from its Execer and logger; it doesn't
// store run results, so one Runner can serve multiple invocations with
// different options.
type Runner struct {
	Exec   Execer
	Logger *log.Logger
}

// NewRunner creates a runner with the given execer.
// If exec is nil, stages run as real subprocesses.
// If logger is nil, the default logger is used.
func NewRunner(exec Execer, logger *log.Logger) *Runner {
	if exec == nil {
		exec = systemExecer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Exec: exec, Logger: logger}
}

// Execute runs the full pipeline for opts.
//
// Each stage must complete successfully before the next begins; the first
// failure aborts the run with a TOOL_FAILED error naming the stage and
// carrying the tool's captured output. Intermediate files are written to a
// fresh per-run work directory, removed on return unless opts.KeepTemp is
// set (in which case Result.WorkDir points at it).
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	if _, err := os.Stat(opts.Input); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", opts.Input)
	}

	runID := uuid.NewString()
	workDir := filepath.Join(os.TempDir(), "bookfold-"+runID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create work directory")
	}
	if !opts.KeepTemp {
		defer os.RemoveAll(workDir)
	}

	stages := Stages(opts, workDir)

	result := &Result{
		Output: opts.Output,
		Stats:  Stats{StageTimes: make(map[string]time.Duration)},
	}
	if opts.KeepTemp {
		result.WorkDir = workDir
	}

	start := time.Now()
	observability.Pipeline().OnRunStart(ctx, runID, opts.Input, len(stages))

	for _, stage := range stages {
		logger.Debug("running stage", "stage", stage.Name, "command", stage.Command, "args", stage.Args)

		stageStart := time.Now()
		observability.Pipeline().OnStageStart(ctx, runID, stage.Name)

		out, err := r.Exec.Run(ctx, stage)

		elapsed := time.Since(stageStart)
		observability.Pipeline().OnStageComplete(ctx, runID, stage.Name, elapsed, err)
		result.Stats.StageTimes[stage.Name] = elapsed

		if err != nil {
			result.Stats.Total = time.Since(start)
			observability.Pipeline().OnRunComplete(ctx, runID, opts.Output, result.Stats.Total, err)
			return nil, stageError(stage, out, err)
		}

		logger.Info("stage complete", "stage", stage.Name, "duration", elapsed.Round(time.Millisecond))
	}

	result.Stats.Total = time.Since(start)
	observability.Pipeline().OnRunComplete(ctx, runID, opts.Output, result.Stats.Total, nil)

	logger.Info("booklet written",
		"output", opts.Output,
		"duration", result.Stats.Total.Round(time.Millisecond))

	return result, nil
}

// stageError wraps a stage failure with the tool's captured output, which
// usually carries the actual diagnostic.
func stageError(stage Stage, out []byte, err error) error {
	msg := strings.TrimSpace(string(out))
	if msg != "" {
		return errors.Wrap(errors.ErrCodeToolFailed, err, "%s stage (%s): %s", stage.Name, stage.Command, msg)
	}
	return errors.Wrap(errors.ErrCodeToolFailed, err, "%s stage (%s)", stage.Name, stage.Command)
}
