package source

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the tree-sitter grammar used to parse a file. The
// javascript grammar also covers JSX.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
)

// ScriptTarget is the language version the project compiles to, as read from
// tsconfig's compilerOptions.target. The grammars themselves are
// version-agnostic, so the target rides along as metadata: it selects the
// build target when the plugin is run under a bundler and shows up in debug
// logs.
type ScriptTarget string

const TargetDefault ScriptTarget = "esnext"

func DialectForPath(path string) (Dialect, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs", ".jsx":
		return DialectJavaScript, nil
	case ".ts", ".cts", ".mts":
		return DialectTypeScript, nil
	case ".tsx":
		return DialectTSX, nil
	}
	return "", errors.Errorf("no grammar for file %s", path)
}

func (d Dialect) sitterLanguage() *sitter.Language {
	switch d {
	case DialectTypeScript:
		return typescript.GetLanguage()
	case DialectTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}
