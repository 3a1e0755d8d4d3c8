package filter

import (
	"testing"

	"github.com/Toalaah/esbuild-plugin-strip/pkg/pattern"
	"github.com/stretchr/testify/assert"
)

func defaultFilter(t *testing.T) *SourceFilter {
	t.Helper()
	include, err := pattern.NewSet(nil, pattern.EmptyMatchesAll)
	assert.NoError(t, err)
	exclude, err := pattern.NewSet([]string{"**/node_modules/**"}, pattern.EmptyMatchesNone)
	assert.NoError(t, err)
	return NewSourceFilter(include, exclude)
}

func TestSourceFilterDefaults(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{path: "src/x.ts", want: true},
		{path: "src/node_modules/x.ts", want: false},
		{path: "node_modules/pkg/index.js", want: false},
		{path: "index.js", want: true},
		{path: "deeply/nested/dir/app.tsx", want: true},
	}
	for _, tt := range cases {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultFilter(t).ShouldVisit(tt.path))
		})
	}
}

func TestSourceFilterIncludeAndExclude(t *testing.T) {
	assert := assert.New(t)
	include := pattern.MustSet([]string{"src/**"}, pattern.EmptyMatchesAll)
	exclude := pattern.MustSet([]string{"**/*.test.ts"}, pattern.EmptyMatchesNone)
	f := NewSourceFilter(include, exclude)

	assert.True(f.ShouldVisit("src/index.ts"))
	assert.False(f.ShouldVisit("lib/index.ts"), "outside include set")
	assert.False(f.ShouldVisit("src/index.test.ts"), "matched by exclude set")
}

func TestSimpleFilter(t *testing.T) {
	assert := assert.New(t)
	f := NewSimpleFilter(defaultFilter(t).ShouldVisit)
	assert.Equal(
		[]string{"src/a.ts", "src/b.ts"},
		f.Apply("src/a.ts", "node_modules/c.ts", "src/b.ts"),
	)
	found, ok := f.Find("node_modules/c.ts", "src/a.ts")
	assert.True(ok)
	assert.Equal("src/a.ts", found)
}
