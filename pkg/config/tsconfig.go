package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

type tsconfig struct {
	CompilerOptions struct {
		Target string `json:"target"`
	} `json:"compilerOptions"`
}

// loadTarget reads compilerOptions.target out of the given tsconfig file.
// tsconfig.json allows comments and trailing commas, so the bytes are run
// through hujson before decoding. A missing or malformed file falls back to
// the default target; that is never an error.
func loadTarget(path string, log *zap.Logger) source.ScriptTarget {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Debug("could not read tsconfig, using default target", zap.String("path", path), zap.Error(err))
		return source.TargetDefault
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		log.Debug("could not standardize tsconfig, using default target", zap.String("path", path), zap.Error(err))
		return source.TargetDefault
	}
	var tc tsconfig
	if err := json.Unmarshal(std, &tc); err != nil {
		log.Debug("could not decode tsconfig, using default target", zap.String("path", path), zap.Error(err))
		return source.TargetDefault
	}
	if tc.CompilerOptions.Target == "" {
		return source.TargetDefault
	}
	return source.ScriptTarget(strings.ToLower(tc.CompilerOptions.Target))
}
