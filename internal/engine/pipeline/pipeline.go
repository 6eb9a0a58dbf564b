// Package pipeline executes the bootstrap workflow as an ordered sequence of
// stages.
package pipeline

import (
	"context"
	"io"

	"go.trai.ch/zerr"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// Stage is one named unit of the workflow. Its output is streamed to the
// stage's span.
type Stage struct {
	Name string
	Run  func(ctx context.Context, out io.Writer) error
}

// Pipeline runs stages strictly in order and short-circuits on the first
// failure, so a failed provisioning never reaches installation and a failed
// installation never reaches the test run.
type Pipeline struct {
	tracer ports.Tracer
}

// New creates a new Pipeline.
func New(tracer ports.Tracer) *Pipeline {
	return &Pipeline{
		tracer: tracer,
	}
}

// Run executes the stages sequentially. The returned error preserves the
// failing stage's literal exit status.
func (p *Pipeline) Run(ctx context.Context, stages []Stage) error {
	names := make([]string, len(stages))
	for i, stage := range stages {
		names[i] = stage.Name
	}
	p.tracer.EmitPlan(ctx, names)

	for _, stage := range stages {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.Wrap(ctxErr, "pipeline canceled")
		}

		if err := p.runStage(ctx, stage); err != nil {
			wrapped := zerr.With(zerr.Wrap(err, "pipeline failed"), "stage", stage.Name)
			return domain.WithExitCode(wrapped, domain.ExitCode(err))
		}
	}

	return nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage) error {
	ctx, span := p.tracer.Start(ctx, stage.Name)
	defer span.End()

	if err := stage.Run(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
