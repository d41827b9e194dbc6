package buildalyzer

type options struct {
	compilerTask      string
	coreCompileTarget string
	skipTree          bool
	observers         []func(Event)
}

// Option configures an Analyzer.
type Option func(*options)

// WithCompilerTask sets the task name whose messages carry the compiler
// command line. Compared case-insensitively. Default: "Csc".
func WithCompilerTask(name string) Option {
	return func(o *options) {
		o.compilerTask = name
	}
}

// WithCoreCompileTarget sets the target name whose compiler invocations take
// precedence over earlier recordings. Compared case-insensitively.
// Default: "CoreCompile".
func WithCoreCompileTarget(name string) Option {
	return func(o *options) {
		o.coreCompileTarget = name
	}
}

// WithObserver registers a callback invoked for every event the Analyzer
// sees, in arrival order, before the event is aggregated.
func WithObserver(fn func(Event)) Option {
	return func(o *options) {
		o.observers = append(o.observers, fn)
	}
}

// WithoutTreeConstruction disables result aggregation. Observers still see
// every event; Analyze returns no builds.
func WithoutTreeConstruction() Option {
	return func(o *options) {
		o.skipTree = true
	}
}

func defaultOptions() options {
	return options{}
}
