package output

import (
	"context"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

// Output defines the interface for build result destinations.
type Output interface {
	Write(ctx context.Context, result model.BuildResult) error
	Close() error
}

// RunStarter is implemented by outputs that reset state at the start of an
// analysis run, such as a truncating file sink. Callers that run repeatedly
// against the same output should invoke StartRun before each run.
type RunStarter interface {
	StartRun() error
}
