package multi

import (
	"context"
	"errors"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/output"
)

// Multi fans out build results to multiple output.Output implementations.
// Each Write delivers the result to every wrapped output sequentially; if
// one output fails, the remaining outputs still receive the result.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// StartRun forwards the run boundary to every wrapped output that observes
// one, collecting errors.
func (m *Multi) StartRun() error {
	var errs []error
	for _, o := range m.outputs {
		if rs, ok := o.(output.RunStarter); ok {
			if err := rs.StartRun(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Write delivers the result to every wrapped output. Errors are collected
// but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, result model.BuildResult) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
