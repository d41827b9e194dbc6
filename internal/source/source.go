// Package source defines where build event streams come from. The build
// engine itself is an external collaborator; a Source adapts some recording
// or transport of its events into an ordered channel.
package source

import (
	"context"

	"github.com/azyobuzin/buildalyzer/internal/model"
)

// Source delivers build events in engine order. The returned channel is
// closed when the stream ends; delivery stops early when the context is
// cancelled.
type Source interface {
	Stream(ctx context.Context, cfg Config) (<-chan model.Event, error)
}

// Config holds provider-specific stream settings.
type Config struct {
	// Path locates the recorded event log (provider-dependent meaning).
	Path string

	// Extra carries provider-specific settings.
	Extra map[string]string
}
