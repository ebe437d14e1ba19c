package search

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/pdrpinto/search/internal/logging"
)

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int

	// MemoryLimit is a soft ceiling in bytes; zero disables the check.
	MemoryLimit       uint64
	MemoryThreshold   float64
	MemoryGauge       MemoryGauge
	MemorySampleEvery int

	// Reopen lets best-first search revisit a state when a strictly shorter
	// path to it is found.
	Reopen bool

	Logger           *slog.Logger
	ProgressInterval int
	Hooks            Hooks
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultMemoryThreshold is the fraction of MemoryLimit that aborts a search.
const DefaultMemoryThreshold = 0.9

func newOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers:   runtime.NumCPU(),
		MemoryThreshold:   DefaultMemoryThreshold,
		MemorySampleEvery: 1,
		ProgressInterval:  100_000,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = logging.NewNop()
	}
	if searchOptions.MemoryGauge == nil {
		searchOptions.MemoryGauge = &ProcessGauge{}
	}
	if searchOptions.MemorySampleEvery < 1 {
		searchOptions.MemorySampleEvery = 1
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// WithWorkers specifies how many instances SolveAll solves in parallel.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMemoryLimit bounds breadth-first and best-first searches.
func WithMemoryLimit(bytes uint64) Option {
	return func(options *Options) { options.MemoryLimit = bytes }
}

// WithMemoryThreshold sets the fraction of the limit at which a search aborts.
func WithMemoryThreshold(fraction float64) Option {
	return func(options *Options) { options.MemoryThreshold = fraction }
}

// WithMemoryGauge replaces the process memory sampler.
func WithMemoryGauge(gauge MemoryGauge) Option {
	return func(options *Options) { options.MemoryGauge = gauge }
}

// WithMemorySampleEvery samples memory once every n outer iterations instead of every one.
func WithMemorySampleEvery(n int) Option {
	return func(options *Options) { options.MemorySampleEvery = n }
}

// WithReopen lets best-first search reopen a state reached again by a shorter path.
func WithReopen(reopen bool) Option {
	return func(options *Options) { options.Reopen = reopen }
}

// WithLogger sets the logger for search lifecycle and progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithProgressInterval logs progress every n expansions at debug level.
func WithProgressInterval(n int) Option {
	return func(options *Options) { options.ProgressInterval = n }
}

// WithHooks installs callbacks run after each iteration and when the search ends.
func WithHooks(hooks Hooks) Option {
	return func(options *Options) { options.Hooks = hooks }
}

// Hooks are invoked synchronously on the goroutine running the search.
type Hooks struct {
	OnExpand func(event ExpandEvent)
	OnFinish func(event FinishEvent)
}

// ExpandEvent describes one outer iteration.
type ExpandEvent struct {
	Kind       Kind
	Step       int
	Depth      int
	Frontier   int
	Discovered int
}

// FinishEvent describes a completed search.
type FinishEvent struct {
	Kind       Kind
	Found      bool
	Err        error
	Length     int
	Expanded   int
	Generated  int
	Discovered int
	Pruned     int
	Elapsed    time.Duration
}
