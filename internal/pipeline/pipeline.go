package pipeline

import (
	"context"
	"fmt"

	"github.com/azyobuzin/buildalyzer/internal/aggregate"
	"github.com/azyobuzin/buildalyzer/internal/output"
	"github.com/azyobuzin/buildalyzer/internal/source"
)

// Pipeline connects an event source, the aggregator, and an output into a
// processing pipeline. Each Run starts from a fresh aggregator, so the same
// Pipeline can analyze repeated builds of one project.
type Pipeline struct {
	source      source.Source
	projectPath string
	opts        aggregate.Options
	output      output.Output
}

// New creates a Pipeline from the given components.
func New(src source.Source, projectPath string, opts aggregate.Options, out output.Output) *Pipeline {
	return &Pipeline{
		source:      src,
		projectPath: projectPath,
		opts:        opts,
		output:      out,
	}
}

// Run streams events from the source into a fresh aggregator and writes one
// result per target framework to the output. A cancelled context stops the
// stream early; whatever was aggregated up to that point is still written,
// so truncated logs yield partial results rather than an error.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) error {
	if rs, ok := p.output.(output.RunStarter); ok {
		if err := rs.StartRun(); err != nil {
			return fmt.Errorf("pipeline start run: %w", err)
		}
	}

	ch, err := p.source.Stream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	agg := aggregate.New(p.projectPath, p.opts)

drain:
	for {
		select {
		case <-ctx.Done():
			break drain
		case ev, ok := <-ch:
			if !ok {
				break drain
			}
			agg.Handle(ev)
		}
	}

	for _, snap := range agg.Results() {
		if err := p.output.Write(ctx, snap.Result()); err != nil {
			return fmt.Errorf("pipeline output: %w", err)
		}
	}
	return ctx.Err()
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
