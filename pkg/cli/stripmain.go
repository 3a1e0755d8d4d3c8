package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Toalaah/esbuild-plugin-strip/pkg/config"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/filter"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/logging"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/plugin"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/strip"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type StripMain struct {
	Version string
}

var cfg struct {
	functions   []string
	noFunctions bool
	debugger    bool
	include     []string
	exclude     []string
	tsconfig    string
	verbose     bool
	write       bool
	bundle      bool
	outDir      string
	strict      bool
	version     bool
}

var hadWarnings = atomic.NewBool(false)
var hadErrors = atomic.NewBool(false)

const defaultOutDir = "dist"

func (sm StripMain) Main() {
	var root = &cobra.Command{
		Use:           "strip [paths...]",
		Short:         "Remove debug function calls and debugger statements from JavaScript/TypeScript source",
		RunE:          sm.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.Flags()

	flags.StringSliceVarP(&cfg.functions, "functions", "f", nil, "Dotted glob patterns of calls to strip (default console.*,assert.*)")
	flags.BoolVar(&cfg.noFunctions, "no-functions", false, "Disable function call stripping entirely")
	flags.BoolVar(&cfg.debugger, "debugger", true, "Strip debugger statements")
	flags.StringSliceVar(&cfg.include, "include", nil, "Glob patterns of files to visit (default: all)")
	flags.StringSliceVar(&cfg.exclude, "exclude", nil, "Glob patterns of files to skip (default: **/node_modules/**)")
	flags.StringVar(&cfg.tsconfig, "tsconfig", "", "Path to tsconfig.json (default: ./tsconfig.json)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "Verbose flag")
	flags.BoolVarP(&cfg.write, "write", "w", false, "Rewrite files in place instead of printing to stdout")
	flags.BoolVar(&cfg.bundle, "bundle", false, "Bundle the entry points with esbuild instead of transforming standalone")
	flags.StringVarP(&cfg.outDir, "outdir", "o", defaultOutDir, "Output directory for --bundle")
	flags.BoolVar(&cfg.strict, "strict", false, "Exit non-zero when warnings were logged")
	flags.BoolVar(&cfg.version, "version", false, "Print the version")

	err := root.Execute()
	if err != nil {
		printErr(err, cfg.verbose)
		os.Exit(1)
	}
	if hadErrors.Load() {
		os.Exit(1)
	}
	if hadWarnings.Load() && cfg.strict {
		os.Exit(1)
	}
}

func (sm StripMain) run(cmd *cobra.Command, args []string) error {
	if cfg.version {
		fmt.Println(sm.Version)
		return nil
	}
	if len(args) == 0 {
		return errors.New("no input paths given")
	}

	log := logging.LogOpts{
		Verbose:     cfg.verbose,
		HadWarnings: hadWarnings,
		HadErrors:   hadErrors,
	}.NewLogger()
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	opts := config.Options{
		Include:      cfg.include,
		Exclude:      cfg.exclude,
		TsconfigPath: cfg.tsconfig,
		Verbose:      cfg.verbose,
		Logger:       log,
	}
	switch {
	case cfg.noFunctions:
		opts.Functions = []string{}
	case len(cfg.functions) > 0:
		opts.Functions = cfg.functions
	}
	if cmd.Flags().Changed("debugger") {
		opts.Debugger = config.Bool(cfg.debugger)
	}

	resolved, err := config.Resolve(opts)
	if err != nil {
		return err
	}

	if cfg.bundle {
		return sm.runBundle(resolved, args)
	}
	return sm.runTransform(resolved, args)
}

// runBundle hands the entry points to esbuild with the plugin installed.
func (sm StripMain) runBundle(resolved *config.StripConfig, entryPoints []string) error {
	result := api.Build(api.BuildOptions{
		EntryPoints: entryPoints,
		Bundle:      true,
		Write:       true,
		Outdir:      cfg.outDir,
		Target:      esbuildTarget(resolved.Target),
		Plugins:     []api.Plugin{plugin.FromConfig(resolved)},
		LogLevel:    api.LogLevelInfo,
	})
	if len(result.Errors) > 0 {
		var errs error
		for _, msg := range result.Errors {
			errs = multierr.Append(errs, errors.New(msg.Text))
		}
		return errors.Wrap(errs, "bundle failed")
	}
	color.New(color.FgHiGreen).Fprintf(os.Stderr, "bundled %d entry point(s) into %s\n", len(entryPoints), cfg.outDir)
	return nil
}

// runTransform strips the given files (or directory trees) standalone,
// printing to stdout or rewriting in place with --write.
func (sm StripMain) runTransform(resolved *config.StripConfig, paths []string) error {
	files, err := expandPaths(paths)
	if err != nil {
		return err
	}

	rewriter := strip.New(resolved)
	stripped := 0
	var errs error
	for _, path := range files {
		n, err := transformFile(resolved, rewriter, path)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, path))
			continue
		}
		stripped += n
	}
	if errs != nil {
		return errs
	}
	if cfg.write {
		color.New(color.FgHiGreen).Fprintf(os.Stderr, "stripped %d call(s) across %d file(s)\n", stripped, len(files))
	}
	return nil
}

func transformFile(resolved *config.StripConfig, rewriter *strip.Rewriter, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	// pass-through: out-of-scope files and inert configs are emitted
	// unchanged without ever being parsed
	if resolved.Inert() || !resolved.Filter.ShouldVisit(path) {
		if !cfg.write {
			_, err = os.Stdout.Write(raw)
		}
		return 0, err
	}

	f, err := source.Parse(path, bytes.NewReader(raw), resolved.Target)
	if err != nil {
		return 0, err
	}
	n, err := rewriter.Rewrite(f)
	if err != nil {
		return 0, err
	}

	if !cfg.write {
		_, err = f.WriteTo(os.Stdout)
		return n, err
	}
	if n == 0 {
		return 0, nil
	}
	return n, os.WriteFile(path, f.Program(), 0644)
}

// expandPaths resolves directory arguments into the source files beneath
// them; explicit file arguments are taken as-is.
func expandPaths(paths []string) ([]string, error) {
	sourceLike := filter.NewSimpleFilter(func(path string) bool {
		_, err := source.DialectForPath(path)
		return err == nil
	})

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, sourceLike.Apply(p)...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func esbuildTarget(target source.ScriptTarget) api.Target {
	switch strings.ToLower(string(target)) {
	case "es5":
		return api.ES5
	case "es6", "es2015":
		return api.ES2015
	case "es2016":
		return api.ES2016
	case "es2017":
		return api.ES2017
	case "es2018":
		return api.ES2018
	case "es2019":
		return api.ES2019
	case "es2020":
		return api.ES2020
	case "es2021":
		return api.ES2021
	case "es2022":
		return api.ES2022
	case "esnext":
		return api.ESNext
	default:
		return api.DefaultTarget
	}
}

func printErr(err error, verbose bool) {
	errFmt := "%v"
	if verbose {
		errFmt = "%+v"
	}
	red := color.New(color.FgHiRed, color.Bold)
	for i, sub := range multierr.Errors(err) {
		red.Fprintf(os.Stderr, "[err %d] "+errFmt+"\n", i+1, sub)
	}
}
