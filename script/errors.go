package script

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDirective indicates a script lacks one of the required
	// id, name or description directives.
	ErrMissingDirective = errors.New("missing directive")

	// ErrDuplicateDirective indicates a required directive was declared twice.
	ErrDuplicateDirective = errors.New("duplicate directive")

	// ErrNotFound indicates a pattern search was exhausted.
	ErrNotFound = errors.New("not found")

	// ErrSynthesis indicates the target range does not contain the
	// selection, so no cursor-anchored edit exists.
	ErrSynthesis = errors.New("could not mutate range")

	// ErrUnsupported indicates a construct that parses but cannot be executed.
	ErrUnsupported = errors.New("unsupported construct")
)

// LexError reports source text that matches no token rule.
type LexError struct {
	Pos  Position
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: unrecognized input %q", e.Pos, e.Text)
}

func (e *LexError) Position() Position { return e.Pos }

// ParseError reports an unexpected token.
type ParseError struct {
	Expected string
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Found.Pos, e.Expected, e.Found)
}

func (e *ParseError) Position() Position { return e.Found.Pos }

// PatternCompileError reports a regex literal that is not a valid pattern.
type PatternCompileError struct {
	Pattern string
	Pos     Position
	Err     error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("%s: invalid regex /%s/: %v", e.Pos, e.Pattern, e.Err)
}

func (e *PatternCompileError) Unwrap() error { return e.Err }

func (e *PatternCompileError) Position() Position { return e.Pos }

// EvalError reports a failed evaluation. Evaluation errors are always
// recoverable and never leave partial output behind.
type EvalError struct {
	Msg string
	Err error
}

func (e *EvalError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalErrorf(format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

func wrapEval(err error, format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// ErrorPosition extracts the source position from a load-time error.
func ErrorPosition(err error) (Position, bool) {
	var positioned interface{ Position() Position }
	if errors.As(err, &positioned) {
		return positioned.Position(), true
	}
	return Position{}, false
}
