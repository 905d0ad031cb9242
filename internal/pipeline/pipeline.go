// Package pipeline orchestrates the stages of a link-check run.
//
// Every stage before checking is sequential and deterministic; only the
// check step fans out internally. The pipeline itself runs steps strictly
// in order, checking for cancellation between them.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/urlsweep/internal/model"
)

// Step is one stage of a run. Steps execute in sequence, each receiving the
// report accumulated by previous steps.
//
// Design decision: We use an interface rather than function types because
// steps carry configuration state, and Name() gives logging a stable label.
type Step interface {
	// Do executes the step, mutating the report in place.
	// An error aborts the run; recoverable conditions must be recorded in
	// the report instead.
	Do(ctx context.Context, report *model.Report) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for step execution.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline; add stages with AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps; they execute in the order added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence, stopping at the first error.
// Cancellation is checked between steps; steps handle their own timeouts.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "directory", report.Directory)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			return err
		}

		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}
	return nil
}
