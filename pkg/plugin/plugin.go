// Package plugin exposes the stripper as an esbuild plugin: an OnLoad hook
// that rewrites matching files before esbuild's own loader sees them.
package plugin

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/Toalaah/esbuild-plugin-strip/pkg/config"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/strip"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

const Name = "strip"

// sourcePathFilter narrows the hook to extensions we have a grammar for;
// glob include/exclude filtering happens inside the hook.
const sourcePathFilter = `\.[cm]?[jt]sx?$`

// New resolves the options and returns the plugin. Configuration problems
// (bad globs) surface here, before any build starts.
func New(opts config.Options) (api.Plugin, error) {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return api.Plugin{}, err
	}
	return FromConfig(cfg), nil
}

// FromConfig wraps an already-resolved configuration. When the configuration
// cannot change any file, no hook is registered at all and every file passes
// through esbuild untouched.
func FromConfig(cfg *config.StripConfig) api.Plugin {
	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			if cfg.Inert() {
				return
			}
			rewriter := strip.New(cfg)
			build.OnLoad(
				api.OnLoadOptions{Filter: sourcePathFilter},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return load(cfg, rewriter, args.Path)
				},
			)
		},
	}
}

func load(cfg *config.StripConfig, rewriter *strip.Rewriter, path string) (api.OnLoadResult, error) {
	if !cfg.Filter.ShouldVisit(relToCwd(path)) {
		// empty result: esbuild falls through to its default loader
		return api.OnLoadResult{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return api.OnLoadResult{}, errors.Wrapf(err, "reading %s", path)
	}
	f, err := source.Parse(path, bytes.NewReader(raw), cfg.Target)
	if err != nil {
		return api.OnLoadResult{}, err
	}
	if _, err := rewriter.Rewrite(f); err != nil {
		return api.OnLoadResult{}, err
	}
	contents := string(f.Program())
	return api.OnLoadResult{
		Contents: &contents,
		Loader:   loaderForPath(path),
	}, nil
}

// relToCwd maps esbuild's absolute paths back onto the working directory so
// that user include/exclude globs written as relative paths keep matching.
func relToCwd(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func loaderForPath(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx":
		return api.LoaderJSX
	case ".ts", ".cts", ".mts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	default:
		return api.LoaderJS
	}
}
