package buildalyzer

import (
	"fmt"
	"io"

	"github.com/azyobuzin/buildalyzer/internal/aggregate"
	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/source/ndjson"
)

// Analyzer extracts per-target-framework build facts from a build event
// stream for one project. Each call to Analyze or AnalyzeLog aggregates from
// scratch, so an Analyzer can be reused across repeated builds.
type Analyzer struct {
	projectPath string
	opts        options
}

// New creates an Analyzer for the project at projectPath.
func New(projectPath string, opts ...Option) *Analyzer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyzer{projectPath: projectPath, opts: o}
}

// Analyze feeds events through a fresh aggregation and returns one Build per
// target framework observed for the project, in discovery order. A truncated
// event stream yields whatever builds could still be assembled.
func (a *Analyzer) Analyze(events []Event) []Build {
	agg := a.newAggregator()
	for _, e := range events {
		agg.Handle(eventToModel(e))
	}
	return a.collect(agg)
}

// AnalyzeLog replays a recorded NDJSON event log from r through the same
// aggregation path as Analyze.
func (a *Analyzer) AnalyzeLog(r io.Reader) ([]Build, error) {
	events, err := ndjson.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buildalyzer: %w", err)
	}
	agg := a.newAggregator()
	for _, ev := range events {
		agg.Handle(ev)
	}
	return a.collect(agg), nil
}

func (a *Analyzer) newAggregator() *aggregate.Aggregator {
	aggOpts := aggregate.Options{
		CompilerTask:         a.opts.compilerTask,
		CoreCompileTarget:    a.opts.coreCompileTarget,
		SkipTreeConstruction: a.opts.skipTree,
	}
	for _, fn := range a.opts.observers {
		fn := fn
		aggOpts.Observers = append(aggOpts.Observers, func(ev model.Event) {
			fn(eventFromModel(ev))
		})
	}
	return aggregate.New(a.projectPath, aggOpts)
}

func (a *Analyzer) collect(agg *aggregate.Aggregator) []Build {
	snaps := agg.Results()
	builds := make([]Build, len(snaps))
	for i, snap := range snaps {
		builds[i] = buildFromResult(snap.Result())
	}
	return builds
}
