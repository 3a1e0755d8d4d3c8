package strip

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Toalaah/esbuild-plugin-strip/pkg/config"
	"github.com/Toalaah/esbuild-plugin-strip/pkg/source"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T, opts config.Options) *config.StripConfig {
	t.Helper()
	if opts.TsconfigPath == "" {
		// keep the resolver from picking up any real tsconfig
		opts.TsconfigPath = filepath.Join(t.TempDir(), "tsconfig.json")
	}
	cfg, err := config.Resolve(opts)
	assert.NoError(t, err)
	return cfg
}

func rewrite(t *testing.T, opts config.Options, path, src string) (string, int) {
	t.Helper()
	cfg := testConfig(t, opts)
	f, err := source.Parse(path, strings.NewReader(src), cfg.Target)
	assert.NoError(t, err)
	n, err := New(cfg).Rewrite(f)
	assert.NoError(t, err)
	assert.False(t, f.Tree().RootNode().HasError(), "rewritten source must stay parseable: %s", f.Program())
	return string(f.Program()), n
}

func TestRewrite(t *testing.T) {
	cases := []struct {
		name string
		opts config.Options
		path string
		src  string
		want string
	}{
		{
			name: "strips console call as statement",
			path: "index.js",
			src:  `console.log("hi");`,
			want: `(void 0);`,
		},
		{
			name: "strips debugger statement",
			path: "index.js",
			src:  `debugger;`,
			want: `;`,
		},
		{
			name: "end to end with surrounding statements",
			path: "index.js",
			src:  `if (x) { console.log("hi"); debugger; return x; }`,
			want: `if (x) { (void 0); ; return x; }`,
		},
		{
			name: "keeps unmatched calls",
			path: "index.js",
			src:  `fetch("/api"); console.log(1);`,
			want: `fetch("/api"); (void 0);`,
		},
		{
			name: "no matches leaves text byte-identical",
			path: "index.js",
			src:  "const x = 1;\nfetch(x);\n",
			want: "const x = 1;\nfetch(x);\n",
		},
		{
			name: "strip in expression position",
			path: "index.js",
			src:  `const x = console.log("y") ?? 1;`,
			want: `const x = (void 0) ?? 1;`,
		},
		{
			name: "strip as member access base",
			path: "index.js",
			src:  `console.log(x).toString();`,
			want: `(void 0).toString();`,
		},
		{
			name: "strip as binary operand keeps precedence",
			path: "index.js",
			src:  `const y = console.log(x) * 2;`,
			want: `const y = (void 0) * 2;`,
		},
		{
			name: "arguments discarded including nested strippable calls",
			path: "index.js",
			src:  `console.log(sideEffect(), console.warn("x"));`,
			want: `(void 0);`,
		},
		{
			name: "nested match inside kept call arguments",
			path: "index.js",
			src:  `keep(console.log("x"));`,
			want: `keep((void 0));`,
		},
		{
			name: "deep dotted path never matches",
			opts: config.Options{Functions: []string{"a.*", "a.b.*"}},
			path: "index.js",
			src:  `a.b.c();`,
			want: `a.b.c();`,
		},
		{
			name: "computed access never matches",
			opts: config.Options{Functions: []string{"console.*"}},
			path: "index.js",
			src:  `console["log"]("hi");`,
			want: `console["log"]("hi");`,
		},
		{
			name: "bare identifier call never matches",
			opts: config.Options{Functions: []string{"*", "log"}},
			path: "index.js",
			src:  `log("hi");`,
			want: `log("hi");`,
		},
		{
			name: "method result chain not stripped",
			path: "index.js",
			src:  `console.log.apply(console, args);`,
			want: `console.log.apply(console, args);`,
		},
		{
			name: "custom function patterns",
			opts: config.Options{Functions: []string{"console.*", "myModule.foo"}},
			path: "index.js",
			src:  `myModule.foo(1); myModule.bar(2); console.error("e");`,
			want: `(void 0); myModule.bar(2); (void 0);`,
		},
		{
			name: "debugger kept when disabled",
			opts: config.Options{Debugger: config.Bool(false)},
			path: "index.js",
			src:  `debugger; console.log("hi");`,
			want: `; (void 0);`,
		},
		{
			name: "empty functions list still strips debugger",
			opts: config.Options{Functions: []string{}},
			path: "index.js",
			src:  `debugger; console.log("hi");`,
			want: `; console.log("hi");`,
		},
		{
			name: "typescript source",
			path: "index.ts",
			src:  `const n: number = 1; console.log(n as number);`,
			want: `const n: number = 1; (void 0);`,
		},
		{
			name: "tsx source",
			path: "App.tsx",
			src:  `export const App = () => { console.log("render"); return <div />; };`,
			want: `export const App = () => { (void 0); return <div />; };`,
		},
		{
			name: "strip inside jsx expression container",
			path: "App.jsx",
			src:  `const el = <div>{console.log("x")}</div>;`,
			want: `const el = <div>{(void 0)}</div>;`,
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := rewrite(t, tt.opts, tt.path, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteReturnsReplacementCount(t *testing.T) {
	assert := assert.New(t)
	got, n := rewrite(t, config.Options{}, "index.js",
		`console.log(1); debugger; console.warn(2); keep();`)
	assert.Equal(`(void 0); ; (void 0); keep();`, got)
	assert.Equal(3, n)
}

func TestRewriteInertConfigIsNoop(t *testing.T) {
	assert := assert.New(t)
	src := `console.log("hi"); debugger;`
	got, n := rewrite(t, config.Options{
		Functions: []string{},
		Debugger:  config.Bool(false),
	}, "index.js", src)
	assert.Equal(src, got)
	assert.Zero(n)
}

func TestRewriteIsIdempotent(t *testing.T) {
	assert := assert.New(t)
	src := `if (x) { console.log("hi"); debugger; return x; }`
	once, n1 := rewrite(t, config.Options{}, "index.js", src)
	assert.Equal(2, n1)
	twice, n2 := rewrite(t, config.Options{}, "index.js", once)
	assert.Equal(once, twice)
	assert.Zero(n2)
}

func TestRewriteLogsFileAndNode(t *testing.T) {
	assert := assert.New(t)
	core, logs := observer.New(zap.DebugLevel)
	cfg := testConfig(t, config.Options{Logger: zap.New(core)})
	f, err := source.Parse("index.js", strings.NewReader(`const x = 1; console.log(x);`), cfg.Target)
	assert.NoError(err)
	_, err = New(cfg).Rewrite(f)
	assert.NoError(err)

	entries := logs.FilterMessage("stripping file").All()
	if !assert.Len(entries, 1) {
		return
	}
	ctx := entries[0].ContextMap()
	file, ok := ctx["file"].(map[string]interface{})
	if assert.True(ok, "file field must be a structured object") {
		assert.Equal("index.js", file["path"])
	}
	assert.Equal(int64(1), ctx["replacements"])
	node, ok := ctx["node"].(map[string]interface{})
	if assert.True(ok, "node field must be a structured object") {
		assert.Equal("call_expression", node["type"])
	}
}
