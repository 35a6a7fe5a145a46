package application

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/standardrb/standardgo/internal/domain"
)

// RunnerService invokes the lint engine for one config: it normalizes the
// options the current mode cannot honor and relays the engine's output.
type RunnerService struct {
	engine domain.Engine
	logger *slog.Logger
}

func NewRunnerService(engine domain.Engine, logger *slog.Logger) *RunnerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunnerService{engine: engine, logger: logger}
}

// Call runs the engine once. Offenses and rule faults come back in the
// outcome's status; an error means the engine could not run at all.
func (s *RunnerService) Call(ctx context.Context, cfg domain.Config, streams domain.Streams) (*domain.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	normalized := cfg.Normalize()

	log := s.logger.With("run_id", uuid.NewString())
	log.Debug("runner.start",
		"paths", normalized.Paths,
		"stdin", normalized.Options.ReadsStdin(),
		"parallel", normalized.Options.Parallel,
		"autocorrect", normalized.Options.Autocorrect,
	)

	outcome, err := s.engine.Run(ctx, normalized, streams)
	if err != nil {
		log.Debug("runner.failed", "error", err)
		return nil, fmt.Errorf("running rubocop: %w", err)
	}

	log.Debug("runner.done", "status", outcome.Status.String())
	return outcome, nil
}

// Capture runs the engine once and returns both streams as strings.
func (s *RunnerService) Capture(ctx context.Context, cfg domain.Config) (*domain.Invocation, error) {
	var stdout, stderr bytes.Buffer
	outcome, err := s.Call(ctx, cfg, domain.Streams{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		return nil, err
	}
	return &domain.Invocation{
		Status: outcome.Status,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Report: outcome.Report,
	}, nil
}
