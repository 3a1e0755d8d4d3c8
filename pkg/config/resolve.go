package config

import (
	"github.com/Toalaah/esbuild-plugin-strip/pkg/filter"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/logging"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/pattern"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var DefaultFunctions = []string{"console.*", "assert.*"}

const (
	DefaultExclude      = "**/node_modules/**"
	DefaultTsconfigPath = "tsconfig.json"
)

// StripConfig is the resolved, immutable per-build configuration. It is
// created once by Resolve and safe for unbounded concurrent reads.
type StripConfig struct {
	Functions pattern.Set
	Debugger  bool
	Target    source.ScriptTarget
	Filter    *filter.SourceFilter
	Logger    *zap.Logger
}

// Resolve merges user options with the defaults and compiles every pattern.
// Invalid globs error here, before any file is processed. The tsconfig read
// is best-effort and never fails the resolution.
func Resolve(opts Options) (*StripConfig, error) {
	functions := opts.Functions
	if functions == nil {
		functions = DefaultFunctions
	}
	fnSet, err := pattern.NewSet(functions, pattern.EmptyMatchesNone)
	if err != nil {
		return nil, errors.Wrap(err, "invalid function pattern")
	}

	include, err := pattern.NewSet(opts.Include, pattern.EmptyMatchesAll)
	if err != nil {
		return nil, errors.Wrap(err, "invalid include pattern")
	}

	excludePatterns := opts.Exclude
	if excludePatterns == nil {
		excludePatterns = []string{DefaultExclude}
	}
	exclude, err := pattern.NewSet(excludePatterns, pattern.EmptyMatchesNone)
	if err != nil {
		return nil, errors.Wrap(err, "invalid exclude pattern")
	}

	stripDebugger := true
	if opts.Debugger != nil {
		stripDebugger = *opts.Debugger
	}

	tsconfigPath := opts.TsconfigPath
	if tsconfigPath == "" {
		tsconfigPath = DefaultTsconfigPath
	}

	log := opts.Logger
	if log == nil {
		log = logging.LogOpts{Verbose: opts.Verbose}.NewLogger()
	}

	return &StripConfig{
		Functions: fnSet,
		Debugger:  stripDebugger,
		Target:    loadTarget(tsconfigPath, log),
		Filter:    filter.NewSourceFilter(include, exclude),
		Logger:    log,
	}, nil
}

// Inert reports whether this configuration can never change a file: no
// function patterns and debugger stripping turned off. Callers use it to
// skip parsing entirely.
func (c *StripConfig) Inert() bool {
	return c.Functions.Empty() && !c.Debugger
}
