package source

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
)

// SourceFile is one parsed source file. It owns its parser and tree for the
// duration of a single transformation; it is not safe for concurrent use.
type SourceFile struct {
	path    string
	dialect Dialect
	target  ScriptTarget
	parser  *sitter.Parser
	program []byte
	tree    *sitter.Tree
}

func Parse(path string, content io.Reader, target ScriptTarget) (f *SourceFile, err error) {
	dialect, err := DialectForPath(path)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, content); err != nil {
		return nil, errors.Wrapf(err, "error reading from %s", path)
	}

	if target == "" {
		target = TargetDefault
	}
	f = &SourceFile{
		path:    path,
		dialect: dialect,
		target:  target,
	}
	f.parser = sitter.NewParser()
	f.parser.SetLanguage(dialect.sitterLanguage())
	if err = f.Reparse(buf.Bytes()); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *SourceFile) Reparse(newProgram []byte) error {
	tree, err := f.parser.ParseCtx(context.TODO(), nil, newProgram)
	if err != nil {
		return errors.Wrapf(err, "could not parse %s", f.path)
	}
	f.program = newProgram
	f.tree = tree
	return nil
}

func (f *SourceFile) Path() string {
	return f.path
}

func (f *SourceFile) Dialect() Dialect {
	return f.dialect
}

func (f *SourceFile) Target() ScriptTarget {
	return f.target
}

func (f *SourceFile) Tree() *sitter.Tree {
	return f.tree
}

func (f *SourceFile) Program() []byte {
	return f.program
}

func (f *SourceFile) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(f.program)
	return int64(n), err
}

// Edit is a byte-range replacement against the current program text.
type Edit struct {
	Start       uint32
	End         uint32
	Replacement string
}

// Splice applies the edits in one pass and reparses the result. Edits must be
// sorted by start offset and must not overlap.
func (f *SourceFile) Splice(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	buf := new(bytes.Buffer)
	var last uint32
	for _, e := range edits {
		if e.Start < last || e.End < e.Start || e.End > uint32(len(f.program)) {
			return errors.Errorf("edit [%d,%d) is out of order or out of range in %s", e.Start, e.End, f.path)
		}
		buf.Write(f.program[last:e.Start])
		buf.WriteString(e.Replacement)
		last = e.End
	}
	buf.Write(f.program[last:])
	return f.Reparse(buf.Bytes())
}

// ReplaceNodeContent splices new content over a single node's byte range.
func (f *SourceFile) ReplaceNodeContent(node *sitter.Node, content string) error {
	return f.Splice([]Edit{{
		Start:       node.StartByte(),
		End:         node.EndByte(),
		Replacement: content,
	}})
}
