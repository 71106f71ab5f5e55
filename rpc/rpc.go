package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/internal/types"
)

var ErrNoSuchRefactoring = errors.New("no such refactoring")

type SuggestRequest struct {
	Context types.EditorContext `json:"context"`
}

type Suggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type PerformRequest struct {
	Context types.EditorContext `json:"context"`
	ID      string              `json:"id"`
}

type PerformResponse struct {
	Mutations []types.Mutation `json:"mutations"`
}

// DecodeSuggestRequest reads a single Suggest request. Unknown fields are
// rejected.
func DecodeSuggestRequest(r io.Reader) (SuggestRequest, error) {
	var req SuggestRequest
	err := decode(r, &req)
	return req, err
}

// DecodePerformRequest reads a single Perform request. Unknown fields are
// rejected.
func DecodePerformRequest(r io.Reader) (PerformRequest, error) {
	var req PerformRequest
	err := decode(r, &req)
	return req, err
}

func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

// Catalog is the set of refactorings a Handler serves.
type Catalog interface {
	All() []registry.Refactoring
	Lookup(id string) (registry.Refactoring, bool)
}

// Handler answers Suggest and Perform requests against a fixed catalog.
type Handler struct {
	catalog Catalog
	logger  *zap.Logger
	timeout time.Duration
}

// NewHandler returns a handler over catalog. A zero timeout means requests
// run until they finish or ctx is done.
func NewHandler(catalog Catalog, logger *zap.Logger, timeout time.Duration) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger,
		timeout: timeout,
	}
}

// Suggest lists every refactoring that applies to the request's context, in
// catalog order. Scripts are evaluated concurrently.
func (h *Handler) Suggest(ctx context.Context, req SuggestRequest) (SuggestResponse, error) {
	entries := h.catalog.All()

	var resp SuggestResponse
	err := h.run(ctx, func() {
		applies := make([]bool, len(entries))

		// limit the number of workers
		sem := make(chan struct{}, runtime.NumCPU())
		var wg sync.WaitGroup
		for i, e := range entries {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, e registry.Refactoring) {
				defer wg.Done()
				defer func() { <-sem }()
				applies[i] = e.Script.AppliesTo(req.Context)
			}(i, e)
		}
		wg.Wait()

		suggestions := make([]Suggestion, 0, len(entries))
		for i, e := range entries {
			if !applies[i] {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				ID:          e.Script.ID(),
				Name:        e.Script.Name(),
				Description: e.Script.Description(),
			})
		}
		resp = SuggestResponse{Suggestions: suggestions}
	})
	if err != nil {
		return SuggestResponse{}, err
	}

	h.logger.Debug("Suggest", zap.Int("candidates", len(entries)), zap.Int("applicable", len(resp.Suggestions)))
	return resp, nil
}

// Perform runs the refactoring named by req.ID and returns its mutations.
func (h *Handler) Perform(ctx context.Context, req PerformRequest) (PerformResponse, error) {
	r, ok := h.catalog.Lookup(req.ID)
	if !ok {
		return PerformResponse{}, fmt.Errorf("%w: %q", ErrNoSuchRefactoring, req.ID)
	}

	var (
		mutations []types.Mutation
		evalErr   error
	)
	err := h.run(ctx, func() {
		mutations, evalErr = r.Script.Perform(req.Context)
	})
	if err == nil {
		err = evalErr
	}
	if err != nil {
		h.logger.Debug("Perform failed", zap.String("id", req.ID), zap.Error(err))
		return PerformResponse{}, fmt.Errorf("%s: %w", req.ID, err)
	}

	h.logger.Debug("Perform", zap.String("id", req.ID), zap.Int("mutations", len(mutations)))
	return PerformResponse{Mutations: mutations}, nil
}

// run executes fn on its own goroutine and waits for it, the handler's
// timeout, or ctx, whichever comes first. fn must only publish its results
// through variables the caller reads after a nil return.
func (h *Handler) run(ctx context.Context, fn func()) error {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("evaluation abandoned: %w", ctx.Err())
	}
}

// ServeSuggest decodes a Suggest request from r and writes the response to w.
func (h *Handler) ServeSuggest(ctx context.Context, r io.Reader, w io.Writer) error {
	req, err := DecodeSuggestRequest(r)
	if err != nil {
		return err
	}
	resp, err := h.Suggest(ctx, req)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(resp)
}

// ServePerform decodes a Perform request from r and writes the response to w.
func (h *Handler) ServePerform(ctx context.Context, r io.Reader, w io.Writer) error {
	req, err := DecodePerformRequest(r)
	if err != nil {
		return err
	}
	resp, err := h.Perform(ctx, req)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(resp)
}
