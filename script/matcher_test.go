package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/kyber/internal/types"
)

// parsePattern parses a single expression statement and returns its expression.
func parsePattern(t *testing.T, src string) Expr {
	t.Helper()
	items, err := ParseTopLevels(src + ";")
	require.NoError(t, err)
	require.Len(t, items, 1)
	stmt, ok := items[0].(*ExprStmt)
	require.True(t, ok, "expected expression statement, got %s", items[0])
	return stmt.X
}

func TestResolve(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		pattern  string
		text     string
		expected types.Range
		captures Captures
	}{
		{
			name:     "string literal first occurrence",
			pattern:  `"st"`,
			text:     "test st",
			expected: types.NewRange(2, 4),
			captures: Captures{},
		},
		{
			name:     "empty string literal",
			pattern:  `""`,
			text:     "abc",
			expected: types.NewRange(0, 0),
			captures: Captures{},
		},
		{
			name:     "regex first match",
			pattern:  `/s+/`,
			text:     "tessst",
			expected: types.NewRange(2, 5),
			captures: Captures{},
		},
		{
			name:     "adjacent concatenation",
			pattern:  `/a/ .. /b/`,
			text:     "ab",
			expected: types.NewRange(0, 2),
			captures: Captures{},
		},
		{
			name:     "concatenation retries past a gap",
			pattern:  `"te" .. "st"`,
			text:     "tetest",
			expected: types.NewRange(2, 6),
			captures: Captures{},
		},
		{
			name:     "binding captures matched text",
			pattern:  `"r" .. foo:(/\w+/)`,
			text:     "rate",
			expected: types.NewRange(0, 4),
			captures: Captures{"foo": "ate"},
		},
		{
			name:     "nested bindings",
			pattern:  `a:(/[\w_]+/ .. /\s+/) .. "!=" .. b:(/\s+/ .. /[\w_]+/)`,
			text:     "x; left != right",
			expected: types.NewRange(3, 16),
			captures: Captures{"a": "left ", "b": " right"},
		},
		{
			name:     "duplicate binding keeps the last write",
			pattern:  `x:"a" .. x:"b"`,
			text:     "ab",
			expected: types.NewRange(0, 2),
			captures: Captures{"x": "b"},
		},
		{
			name:     "retry discards captures of the rejected attempt",
			pattern:  `l:/[a-z]/ .. "1"`,
			text:     "ab1",
			expected: types.NewRange(1, 3),
			captures: Captures{"l": "b"},
		},
		{
			name:     "empty left match slides forward",
			pattern:  `/x*/ .. "b"`,
			text:     "ab",
			expected: types.NewRange(1, 2),
			captures: Captures{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, captures, err := Resolve(parsePattern(t, tt.pattern), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.captures, captures)
		})
	}
}

func TestResolveNoMatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		text    string
	}{
		{"missing literal", `"x"`, "abc"},
		{"missing regex", `/\d/`, "abc"},
		{"gap between sides", `/a/ .. /b/`, "a_b"},
		{"right side absent", `"a" .. "z"`, "abc"},
		{"binding of missing literal", `n:"x"`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Resolve(parsePattern(t, tt.pattern), tt.text)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolveRejectsNonPatterns(t *testing.T) {
	t.Parallel()
	_, _, err := Resolve(parsePattern(t, `name`), "name")
	assert.ErrorIs(t, err, ErrUnsupported)

	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}
