package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"github.com/azyobuzin/buildalyzer/internal/aggregate"
	"github.com/azyobuzin/buildalyzer/internal/config"
	"github.com/azyobuzin/buildalyzer/internal/logging"
	"github.com/azyobuzin/buildalyzer/internal/output"
	"github.com/azyobuzin/buildalyzer/internal/output/async"
	"github.com/azyobuzin/buildalyzer/internal/output/file"
	"github.com/azyobuzin/buildalyzer/internal/output/multi"
	"github.com/azyobuzin/buildalyzer/internal/output/stdout"
	"github.com/azyobuzin/buildalyzer/internal/output/webhook"
	"github.com/azyobuzin/buildalyzer/internal/pipeline"
	"github.com/azyobuzin/buildalyzer/internal/source"

	// Register source implementations.
	_ "github.com/azyobuzin/buildalyzer/internal/source/ndjson"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("buildalyzer", config.Version)
		return
	}

	// Load .env when present; real env vars take precedence.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration:\n%v", err)
	}

	usesStdout := slices.Contains(cfg.Output.Formats, "stdout")
	logging.Init(usesStdout, logging.ParseLevel(cfg.LogLevel))

	out, err := buildOutput(cfg)
	if err != nil {
		log.Fatalf("failed to set up output: %v", err)
	}

	ctor, err := source.Get(cfg.Source.Provider)
	if err != nil {
		log.Fatalf("failed to get source: %v", err)
	}

	aggOpts := aggregate.Options{
		CompilerTask:      cfg.Analysis.CompilerTask,
		CoreCompileTarget: cfg.Analysis.CoreCompileTarget,
	}
	p := pipeline.New(ctor(), cfg.Project, aggOpts, out)
	defer shutdown(p, cfg.ShutdownTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
		cancel()
	}()

	srcCfg := source.Config{Path: cfg.Source.LogPath, Extra: cfg.Source.Extra}

	slog.Info("starting analysis",
		"project", cfg.Project,
		"source", cfg.Source.Provider,
		"log", cfg.Source.LogPath,
		"watch", cfg.Watch)

	if cfg.Watch {
		if err := watch(ctx, p, srcCfg); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("watch error: %v", err)
		}
		return
	}

	if err := p.Run(ctx, srcCfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("pipeline error: %v", err)
	}
}

// shutdown closes the pipeline, bounding the close by the configured
// timeout so a stuck sink such as an undrained webhook cannot hang exit.
func shutdown(p *pipeline.Pipeline, timeout time.Duration) {
	done := make(chan error, 1)
	go func() { done <- p.Close() }()
	select {
	case err := <-done:
		if err != nil {
			slog.Error("output close failed", "error", err)
		}
	case <-time.After(timeout):
		slog.Warn("shutdown timed out before outputs closed", "timeout", timeout)
	}
}

// buildOutput assembles the configured sinks, fanning out when several are
// requested. The webhook sink is wrapped in an async writer so a slow
// endpoint does not stall the other sinks.
func buildOutput(cfg config.Config) (output.Output, error) {
	verbosity := output.ParseVerbosity(cfg.Output.Verbosity)

	var outs []output.Output
	for _, format := range cfg.Output.Formats {
		switch format {
		case "stdout":
			outs = append(outs, stdout.New(verbosity, cfg.Output.Pretty))
		case "file":
			opts := []file.Option{}
			if cfg.Watch {
				opts = append(opts, file.WithTruncate())
			}
			f, err := file.New(cfg.Output.Path, verbosity, opts...)
			if err != nil {
				return nil, err
			}
			outs = append(outs, f)
		case "webhook":
			outs = append(outs, async.New(webhook.New(cfg.Output.WebhookURL, verbosity)))
		}
	}

	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}

// watch re-runs the analysis whenever the event log is rewritten. Build
// tools typically replace the log wholesale, so writes and renames both
// trigger a re-run.
func watch(ctx context.Context, p *pipeline.Pipeline, srcCfg source.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors and build engines replace files by
	// rename, which drops a watch on the file itself.
	dir := filepath.Dir(srcCfg.Path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Initial run before waiting for changes.
	if err := p.Run(ctx, srcCfg); err != nil {
		return err
	}

	target := filepath.Clean(srcCfg.Path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			slog.Info("event log changed, re-running analysis", "path", ev.Name)
			if err := p.Run(ctx, srcCfg); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}
