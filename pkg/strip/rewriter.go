package strip

import (
	"github.com/Toalaah/esbuild-plugin-strip/pkg/config"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/logging"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
)

const (
	// voidExpr is valid anywhere an expression is expected, so a stripped
	// call keeps the surrounding syntax intact. The parentheses matter:
	// a bare void 0 regroups under operator precedence (`void 0 * 2`
	// parses as `void (0 * 2)`) and is a lex error as a member-access
	// base (`void 0.toString()`).
	voidExpr = "(void 0)"
	// emptyStmt replaces a debugger statement.
	emptyStmt = ";"
)

// Rewriter strips configured calls and debugger statements out of parsed
// source files. It is stateless and safe to share across files.
type Rewriter struct {
	cfg *config.StripConfig
}

func New(cfg *config.StripConfig) *Rewriter {
	return &Rewriter{cfg: cfg}
}

// Rewrite walks the file's tree once, replaces every matching call
// expression and debugger statement with its neutral replacement, and
// reparses the spliced program. It returns the number of replacements made.
func (r *Rewriter) Rewrite(f *source.SourceFile) (int, error) {
	if r.cfg.Inert() {
		return 0, nil
	}
	p := &pass{r: r, program: f.Program()}
	p.visit(f.Tree().RootNode())
	if len(p.edits) == 0 {
		return 0, nil
	}
	r.cfg.Logger.Debug("stripping file",
		logging.FileField(f),
		logging.NodeField(p.first),
		zap.Int("replacements", len(p.edits)),
	)
	if err := f.Splice(p.edits); err != nil {
		return 0, err
	}
	return len(p.edits), nil
}

// pass gathers edits for one file in a pre-order walk over named nodes. A
// replaced node's children are never visited, so the arguments of a stripped
// call are discarded wholesale, nested strippable calls included.
type pass struct {
	r       *Rewriter
	program []byte
	edits   []source.Edit
	first   *sitter.Node
}

func (p *pass) visit(n *sitter.Node) {
	if replacement, ok := p.r.replacement(n, p.program); ok {
		if p.first == nil {
			p.first = n
		}
		p.edits = append(p.edits, source.Edit{
			Start:       n.StartByte(),
			End:         n.EndByte(),
			Replacement: replacement,
		})
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p.visit(n.NamedChild(i))
	}
}

func (r *Rewriter) replacement(n *sitter.Node, program []byte) (string, bool) {
	switch n.Type() {
	case "call_expression":
		if name, ok := calleeName(n, program); ok && r.cfg.Functions.Matches(name) {
			return voidExpr, true
		}
	case "debugger_statement":
		if r.cfg.Debugger {
			return emptyStmt, true
		}
	}
	return "", false
}

// calleeName returns the dotted object.method name of a call's callee.
// Only a single property access off a bare identifier qualifies: a.b.c(),
// a[b]() and fn() all return false, no matter what patterns are configured.
func calleeName(call *sitter.Node, program []byte) (string, bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return "", false
	}
	object := callee.ChildByFieldName("object")
	property := callee.ChildByFieldName("property")
	if object == nil || property == nil {
		return "", false
	}
	if object.Type() != "identifier" || property.Type() != "property_identifier" {
		return "", false
	}
	return object.Content(program) + "." + property.Content(program), true
}
