package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/output"
)

// Output writes JSON-encoded build results to stdout, one per line
// (NDJSON), or pretty-printed.
type Output struct {
	enc       *json.Encoder
	verbosity output.Verbosity
}

// New creates a stdout Output with verbosity-aware field omission and
// optional pretty-printed JSON.
func New(verbosity output.Verbosity, pretty bool) *Output {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, verbosity: verbosity}
}

func (o *Output) Write(_ context.Context, result model.BuildResult) error {
	formatted := output.FormatResult(result, o.verbosity)
	if err := o.enc.Encode(formatted); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
