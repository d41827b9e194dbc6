package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/azyobuzin/buildalyzer/internal/model"
	"github.com/azyobuzin/buildalyzer/internal/output"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// WithTruncate starts each run from an empty file instead of appending: the
// file is truncated at open and again on every StartRun. Watch-mode reruns
// use this so the file always holds the latest analysis only.
func WithTruncate() Option {
	return func(o *Output) { o.truncate = true }
}

// Output appends build results as NDJSON to a file with buffered I/O.
type Output struct {
	w         *bufio.Writer
	f         *os.File
	mu        sync.Mutex
	path      string
	verbosity output.Verbosity
	bufSize   int
	truncate  bool
}

// New creates a file output that writes NDJSON to the given path.
func New(path string, verbosity output.Verbosity, opts ...Option) (*Output, error) {
	o := &Output{
		path:      path,
		verbosity: verbosity,
		bufSize:   defaultBufSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if o.truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("file output: open %s: %w", path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, o.bufSize)
	return o, nil
}

// StartRun discards previous contents when truncation is enabled, so a
// rerun replaces the earlier results instead of appending to them.
func (o *Output) StartRun() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.truncate {
		return nil
	}
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("file output: flush: %w", err)
	}
	if err := o.f.Truncate(0); err != nil {
		return fmt.Errorf("file output: truncate %s: %w", o.path, err)
	}
	if _, err := o.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("file output: seek %s: %w", o.path, err)
	}
	o.w.Reset(o.f)
	return nil
}

// Write JSON-encodes the result and appends it as a line to the file.
func (o *Output) Write(_ context.Context, result model.BuildResult) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	formatted := output.FormatResult(result, o.verbosity)
	data, err := json.Marshal(formatted)
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	data = append(data, '\n')

	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return o.f.Close()
}
