package logging

import (
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type pathed interface {
	Path() string
}

type fileField struct {
	f pathed
}

func (field fileField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("path", field.f.Path())
	return nil
}

func FileField(f pathed) zap.Field {
	return zap.Object("file", fileField{f: f})
}

type astNodeField struct {
	n *sitter.Node
}

func (field astNodeField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	start := field.n.StartPoint()
	end := field.n.EndPoint()

	enc.AddString("type", field.n.Type())
	enc.AddUint32("start-row", start.Row)
	enc.AddUint32("start-column", start.Column)
	enc.AddUint32("end-row", end.Row)
	enc.AddUint32("end-column", end.Column)
	return nil
}

func NodeField(n *sitter.Node) zap.Field {
	return zap.Object("node", astNodeField{n: n})
}
