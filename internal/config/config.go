package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Version is the analyzer release version.
const Version = "0.1.0"

// Config holds all analyzer configuration.
type Config struct {
	Project         string
	Source          SourceConfig
	Analysis        AnalysisConfig
	Output          OutputConfig
	LogLevel        string
	Watch           bool
	ShutdownTimeout time.Duration
}

// SourceConfig holds event-source settings.
type SourceConfig struct {
	Provider string
	LogPath  string
	Extra    map[string]string
}

// AnalysisConfig holds aggregation settings.
type AnalysisConfig struct {
	CompilerTask      string
	CoreCompileTarget string
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Formats    []string // "stdout", "file", "webhook"
	Path       string   // file output destination
	WebhookURL string
	Verbosity  string // "minimal", "standard", "full"
	Pretty     bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Project: os.Getenv("BUILDALYZER_PROJECT"),
		Source: SourceConfig{
			Provider: getenv("BUILDALYZER_SOURCE", "ndjson"),
			LogPath:  os.Getenv("BUILDALYZER_LOG"),
		},
		Analysis: AnalysisConfig{
			CompilerTask:      getenv("BUILDALYZER_COMPILER_TASK", "Csc"),
			CoreCompileTarget: getenv("BUILDALYZER_CORE_COMPILE_TARGET", "CoreCompile"),
		},
		Output: OutputConfig{
			Formats:    splitList(getenv("BUILDALYZER_OUTPUT", "stdout")),
			Path:       os.Getenv("BUILDALYZER_OUTPUT_PATH"),
			WebhookURL: os.Getenv("BUILDALYZER_WEBHOOK_URL"),
			Verbosity:  getenv("BUILDALYZER_VERBOSITY", "standard"),
			Pretty:     getenvBool("BUILDALYZER_OUTPUT_PRETTY", false),
		},
		LogLevel:        getenv("BUILDALYZER_LOG_LEVEL", "info"),
		Watch:           getenvBool("BUILDALYZER_WATCH", false),
		ShutdownTimeout: getenvDuration("BUILDALYZER_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the configuration for inconsistencies, collecting every
// problem rather than stopping at the first.
func (c Config) Validate() error {
	var errs []error

	if c.Project == "" {
		errs = append(errs, errors.New("config: BUILDALYZER_PROJECT is required"))
	}
	if c.Source.LogPath == "" {
		errs = append(errs, errors.New("config: BUILDALYZER_LOG is required"))
	}

	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("config: invalid verbosity %q", c.Output.Verbosity))
	}

	if len(c.Output.Formats) == 0 {
		errs = append(errs, errors.New("config: at least one output format is required"))
	}
	for _, f := range c.Output.Formats {
		switch f {
		case "stdout":
		case "file":
			if c.Output.Path == "" {
				errs = append(errs, errors.New("config: file output requires BUILDALYZER_OUTPUT_PATH"))
			}
		case "webhook":
			if c.Output.WebhookURL == "" {
				errs = append(errs, errors.New("config: webhook output requires BUILDALYZER_WEBHOOK_URL"))
			}
		default:
			errs = append(errs, fmt.Errorf("config: unknown output format %q", f))
		}
	}

	if c.Analysis.CompilerTask == "" {
		errs = append(errs, errors.New("config: compiler task must not be empty"))
	}
	if c.Analysis.CoreCompileTarget == "" {
		errs = append(errs, errors.New("config: core compile target must not be empty"))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// splitList splits a comma-separated value, trimming whitespace and dropping
// empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
