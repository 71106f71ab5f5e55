package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/script"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func loadError(t *testing.T, path, source string) error {
	t.Helper()
	_, err := script.Parse(source)
	require.Error(t, err)
	return &registry.LoadError{Path: path, Source: source, Err: err}
}

func TestFormatLoadError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     string
		source   string
		expected string
	}{
		{
			name:   "parse error at end of input",
			path:   "broken.kyb",
			source: `@id="x"; find("t")`,
			expected: `error: parse error
 --> broken.kyb:1:20
  |
1 | @id="x"; find("t")
  |                    ^ expected ";", found EOF

`,
		},
		{
			name:   "lex error on second line",
			path:   "lex.kyb",
			source: "@id=\"x\";\n  let x = $;",
			expected: `error: lex error
 --> lex.kyb:2:11
  |
2 |   let x = $;
  |           ^ unrecognized input "$"

`,
		},
		{
			name:   "invalid regex",
			path:   "re.kyb",
			source: `find(/a(/);`,
			expected: "error: invalid regex\n" +
				" --> re.kyb:1:6\n" +
				"  |\n" +
				"1 | find(/a(/);\n" +
				"  |      ^ /a(/: error parsing regexp: missing closing ): `a(`\n\n",
		},
		{
			name:   "missing directive",
			path:   "meta.kyb",
			source: `@id="x";`,
			expected: `error: invalid directives
 --> meta.kyb
  | missing directive "name"

`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FormatLoadError(loadError(t, tt.path, tt.source))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatLoadErrorWithoutSource(t *testing.T) {
	t.Parallel()
	_, err := script.Parse(`@id="x"; ;`)
	require.Error(t, err)

	got := FormatLoadError(err)
	assert.Contains(t, got, "error: parse error\n")
	assert.Contains(t, got, " --> <input>\n")
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line     string
		column   int
		expected int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tx", 2, 8},
		{"ab\tx", 4, 8},
		{"short", 20, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, calculateVisualColumn(tt.line, tt.column), "%q col %d", tt.line, tt.column)
	}
}

func TestFormatRefactorings(t *testing.T) {
	t.Parallel()
	entries := []registry.Refactoring{
		{
			Origin: "builtin:a.kyb",
			Script: script.MustParse(`@id="a"; @name="Short"; @description="First";`),
		},
		{
			Origin: "/tmp/long.kyb",
			Script: script.MustParse(`@id="long-id"; @name="Long"; @description="Second";`),
		},
	}

	expected := `a        Short
         First
         builtin:a.kyb
long-id  Long
         Second
         /tmp/long.kyb
2 refactorings
`
	assert.Equal(t, expected, FormatRefactorings(entries))
}
