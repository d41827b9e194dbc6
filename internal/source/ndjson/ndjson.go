// Package ndjson replays recorded build event logs: one JSON-encoded event
// per line, in the order the engine emitted them.
package ndjson

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/source"
)

// Event log lines can carry whole compiler command lines; allow long ones.
const maxLineSize = 4 * 1024 * 1024

func init() {
	source.Register("ndjson", func() source.Source {
		return &Source{}
	})
}

// Source implements source.Source for NDJSON event log files.
type Source struct{}

// Stream opens the log at cfg.Path and replays its events in order.
// Malformed lines are skipped with a warning, so a truncated or partially
// written log still yields everything parseable.
func (s *Source) Stream(ctx context.Context, cfg source.Config) (<-chan model.Event, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("ndjson source: %w", err)
	}

	ch := make(chan model.Event)
	go func() {
		defer close(ch)
		defer f.Close()

		sc := newScanner(f)
		line := 0
		for sc.Scan() {
			line++
			ev, ok := decodeLine(sc.Bytes(), line)
			if !ok {
				continue
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			slog.Warn("ndjson source: stopped reading", "path", cfg.Path, "error", err)
		}
	}()
	return ch, nil
}

// ReadAll decodes every event from r, skipping malformed lines. Used for
// one-shot replay where streaming buys nothing.
func ReadAll(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if ev, ok := decodeLine(sc.Bytes(), line); ok {
			events = append(events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("ndjson: read: %w", err)
	}
	return events, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

func decodeLine(data []byte, line int) (model.Event, bool) {
	if len(data) == 0 {
		return model.Event{}, false
	}
	var ev model.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("ndjson source: skipping malformed line", "line", line, "error", err)
		return model.Event{}, false
	}
	return ev, true
}
