package config

import "go.uber.org/zap"

// Options is the user-facing configuration surface. Every field is optional;
// Resolve applies the defaults.
type Options struct {
	// Include and Exclude are glob patterns matched against file paths. An
	// absent include list matches every file; an absent exclude list
	// defaults to skipping anything under a node_modules directory.
	Include []string
	Exclude []string

	// Functions is the list of dotted glob patterns (object.method) naming
	// calls to strip. Nil means "not set" and applies the defaults
	// (console.* and assert.*). An explicitly empty, non-nil list disables
	// function stripping while keeping the other defaults.
	Functions []string

	// Debugger controls whether debugger statements are removed. Nil
	// defaults to true.
	Debugger *bool

	// TsconfigPath points at the project's tsconfig.json; only
	// compilerOptions.target is consumed. Defaults to "tsconfig.json"
	// relative to the working directory.
	TsconfigPath string

	Verbose bool

	// Logger overrides the logger Resolve would otherwise construct from
	// Verbose. The CLI uses this to share its warning-tracking logger.
	Logger *zap.Logger
}

// Bool is a convenience for filling Options.Debugger inline.
func Bool(v bool) *bool {
	return &v
}
