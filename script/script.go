package script

import (
	"fmt"

	"github.com/gnolang/kyber/internal/types"
)

// Required directive names. Every script declares each exactly once.
const (
	DirectiveID          = "id"
	DirectiveName        = "name"
	DirectiveDescription = "description"
)

var requiredDirectives = []string{DirectiveID, DirectiveName, DirectiveDescription}

// Script is a parsed refactoring. It is immutable once constructed and
// safe to evaluate from many goroutines at once.
type Script struct {
	topLevels  []TopLevel
	directives map[string]string
}

// Parse lexes, parses and validates source. Lex, parse and regex compile
// failures, as well as missing directives, are reported here and never
// at evaluation time.
func Parse(source string) (*Script, error) {
	items, err := ParseTopLevels(source)
	if err != nil {
		return nil, err
	}
	return New(items)
}

// MustParse is like Parse but panics on error. Use it for scripts built
// into the binary.
func MustParse(source string) *Script {
	s, err := Parse(source)
	if err != nil {
		panic(fmt.Sprintf("script: Parse: %v", err))
	}
	return s
}

// New validates top-level items and builds a Script from them.
func New(items []TopLevel) (*Script, error) {
	directives := make(map[string]string)
	for _, item := range items {
		d, ok := item.(*Directive)
		if !ok {
			continue
		}
		if _, seen := directives[d.Name]; seen && isRequired(d.Name) {
			return nil, fmt.Errorf("%s: %w %q", d.pos, ErrDuplicateDirective, d.Name)
		}
		directives[d.Name] = d.Value
	}

	for _, name := range requiredDirectives {
		if _, ok := directives[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingDirective, name)
		}
	}

	return &Script{
		topLevels:  append([]TopLevel(nil), items...),
		directives: directives,
	}, nil
}

func isRequired(name string) bool {
	for _, r := range requiredDirectives {
		if r == name {
			return true
		}
	}
	return false
}

func (s *Script) ID() string          { return s.directives[DirectiveID] }
func (s *Script) Name() string        { return s.directives[DirectiveName] }
func (s *Script) Description() string { return s.directives[DirectiveDescription] }

// Directive returns the value of any directive, including ones beyond the
// required three.
func (s *Script) Directive(name string) (string, bool) {
	v, ok := s.directives[name]
	return v, ok
}

// TopLevels returns the script's items in source order.
func (s *Script) TopLevels() []TopLevel {
	return append([]TopLevel(nil), s.topLevels...)
}

// AppliesTo reports whether the script evaluates successfully against ctx.
func (s *Script) AppliesTo(ctx types.EditorContext) bool {
	_, err := s.Exec(ctx)
	return err == nil
}

// Perform evaluates the script and returns its complete mutation list.
func (s *Script) Perform(ctx types.EditorContext) ([]types.Mutation, error) {
	return s.Exec(ctx)
}
