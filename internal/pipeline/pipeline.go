package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/weeklyreport/internal/model"
)

// Step is one edit of the report document.
//
// A step locates its own regions in report.HTML, rewrites them and records
// the outcome (populated, skipped, warnings) on the report. Missing template
// markers are warnings, not errors: Do returns an error only when the
// document cannot be edited at all, such as a template with duplicate
// section ids.
type Step interface {
	Do(ctx context.Context, report *model.Report) error

	// Name identifies the step in logs and in Report.PerformedSteps.
	Name() string
}

// Pipeline runs the steps of one generation in order over a single report.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running the remaining steps after a step fails.
// The failure is still recorded on the report. The default is to stop, and
// the generator then writes no output.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends step. Steps run in the order they were added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

// Execute applies every step to report.
//
// Cancellation is checked between steps only. Each step is a single
// in-memory splice, so the document is never left with a half-replaced
// region. The first failure is returned unless WithContinueOnError is set,
// in which case the last failure stays on report.Error and Execute
// returns nil.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	p.logger.Debug("filling template",
		"template", report.TemplatePath,
		"steps", p.StepNames(),
	)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("generation cancelled", "before", step.Name(), "reason", err)
			report.Fail(err)
			return err
		}

		err := step.Do(ctx, report)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
		if err == nil {
			p.logger.Debug("step done", "step", step.Name(), "populated", len(report.Populated))
			continue
		}

		p.logger.Error("step failed", "step", step.Name(), "template", report.TemplatePath, "error", err)
		report.Fail(err)
		if !p.continueOnError {
			return err
		}
	}
	return nil
}
