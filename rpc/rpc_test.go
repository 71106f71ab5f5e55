package rpc

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/kyber/internal/config"
	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/internal/types"
	"github.com/gnolang/kyber/script"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := registry.Load(nil, config.Default())
	require.NoError(t, err)
	return NewHandler(reg, nil, time.Second)
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	tests := []struct {
		name     string
		ctx      types.EditorContext
		expected []string
	}{
		{"not equal under cursor", types.NewContext(1, "a ", "!=", " b"), []string{"extract-not-eq"}},
		{"equal under cursor", types.NewContext(1, "a =", "", "= b"), []string{"swap-eq-operands"}},
		{"nothing applies", types.NewContext(-1, "plain text"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := h.Suggest(context.Background(), SuggestRequest{Context: tt.ctx})
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Suggestions))
			for _, s := range resp.Suggestions {
				got = append(got, s.ID)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggestKeepsCatalogOrder(t *testing.T) {
	t.Parallel()
	var entries []registry.Refactoring
	for _, id := range []string{"c", "a", "b", "skip", "d"} {
		body := `let r = find("t");`
		if id == "skip" {
			body = `find("missing");`
		}
		s := script.MustParse(`@id="` + id + `"; @name="` + id + `"; @description="d";` + body)
		entries = append(entries, registry.Refactoring{Origin: id, Script: s})
	}
	reg, err := registry.New(entries...)
	require.NoError(t, err)

	resp, err := NewHandler(reg, nil, 0).Suggest(context.Background(), SuggestRequest{Context: types.NewContext(-1, "t")})
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 4)
	assert.Equal(t, Suggestion{ID: "c", Name: "c", Description: "d"}, resp.Suggestions[0])
	assert.Equal(t, "a", resp.Suggestions[1].ID)
	assert.Equal(t, "b", resp.Suggestions[2].ID)
	assert.Equal(t, "d", resp.Suggestions[3].ID)
}

func TestPerform(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	resp, err := h.Perform(context.Background(), PerformRequest{
		Context: types.NewContext(1, "a ", "!=", " b"),
		ID:      "extract-not-eq",
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Mutation{types.Delete(3), types.Backspace(2), types.Insert("!(a == b)")}, resp.Mutations)

	_, err = h.Perform(context.Background(), PerformRequest{Context: types.NewContext(-1, "x"), ID: "nope"})
	assert.ErrorIs(t, err, ErrNoSuchRefactoring)
	assert.ErrorContains(t, err, "no such refactoring")

	_, err = h.Perform(context.Background(), PerformRequest{Context: types.NewContext(-1, "x"), ID: "extract-not-eq"})
	assert.ErrorIs(t, err, script.ErrNotFound)
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil, nil, 10*time.Millisecond)

	block := make(chan struct{})
	defer close(block)

	err := h.run(context.Background(), func() { <-block })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil, nil, 0)

	block := make(chan struct{})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := h.run(ctx, func() { <-block })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServe(t *testing.T) {
	t.Parallel()
	h := newHandler(t)

	tests := []struct {
		name     string
		serve    func(context.Context, *strings.Reader, *bytes.Buffer) error
		input    string
		expected string
		errMsg   string
	}{
		{
			name: "suggest",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServeSuggest(ctx, r, w)
			},
			input:    `{"context":{"contents":[{"text":"a ","selected":false},{"text":"!=","selected":true},{"text":" b","selected":false}]}}`,
			expected: `{"suggestions":[{"id":"extract-not-eq","name":"Extract ! from !=","description":"Replace a != b with !(a == b)"}]}`,
		},
		{
			name: "suggest none",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServeSuggest(ctx, r, w)
			},
			input:    `{"context":{"contents":[]}}`,
			expected: `{"suggestions":[]}`,
		},
		{
			name: "perform",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServePerform(ctx, r, w)
			},
			input:    `{"id":"extract-not-eq","context":{"contents":[{"text":"a ","selected":false},{"text":"!=","selected":true},{"text":" b","selected":false}]}}`,
			expected: `{"mutations":[{"delete":3},{"backspace":2},{"insert":"!(a == b)"}]}`,
		},
		{
			name: "unknown request field",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServeSuggest(ctx, r, w)
			},
			input:  `{"context":{"contents":[]},"extra":1}`,
			errMsg: `unknown field "extra"`,
		},
		{
			name: "unknown region field",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServePerform(ctx, r, w)
			},
			input:  `{"id":"x","context":{"contents":[{"text":"a","cursor":true}]}}`,
			errMsg: `unknown field "cursor"`,
		},
		{
			name: "unknown id",
			serve: func(ctx context.Context, r *strings.Reader, w *bytes.Buffer) error {
				return h.ServePerform(ctx, r, w)
			},
			input:  `{"id":"x","context":{"contents":[]}}`,
			errMsg: "no such refactoring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			err := tt.serve(context.Background(), strings.NewReader(tt.input), &out)
			if tt.errMsg != "" {
				assert.ErrorContains(t, err, tt.errMsg)
				assert.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, out.String())
		})
	}
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) All() []registry.Refactoring {
	args := m.Called()
	return args.Get(0).([]registry.Refactoring)
}

func (m *mockCatalog) Lookup(id string) (registry.Refactoring, bool) {
	args := m.Called(id)
	return args.Get(0).(registry.Refactoring), args.Bool(1)
}

func TestHandlerUsesCatalog(t *testing.T) {
	t.Parallel()
	s := script.MustParse(`@id="upper"; @name="Upper"; @description="d"; let r = find("t"); r.replace("T");`)
	entry := registry.Refactoring{Origin: "mock", Script: s}

	catalog := new(mockCatalog)
	catalog.On("All").Return([]registry.Refactoring{entry})
	catalog.On("Lookup", "upper").Return(entry, true)
	catalog.On("Lookup", "lower").Return(registry.Refactoring{}, false)

	h := NewHandler(catalog, nil, 0)
	ctx := types.NewContext(-1, "t")

	suggested, err := h.Suggest(context.Background(), SuggestRequest{Context: ctx})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{ID: "upper", Name: "Upper", Description: "d"}}, suggested.Suggestions)

	performed, err := h.Perform(context.Background(), PerformRequest{Context: ctx, ID: "upper"})
	require.NoError(t, err)
	assert.Equal(t, []types.Mutation{types.Delete(1), types.Insert("T")}, performed.Mutations)

	_, err = h.Perform(context.Background(), PerformRequest{Context: ctx, ID: "lower"})
	assert.ErrorIs(t, err, ErrNoSuchRefactoring)

	catalog.AssertExpectations(t)
}
