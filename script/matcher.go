package script

import (
	"strings"

	"github.com/gnolang/kyber/internal/types"
)

// Captures maps binding names to the text they matched.
type Captures map[string]string

// Resolve locates pattern in text and returns the matched range, relative
// to text, with the captures recorded along the way.
//
// Literals and regexes take their first occurrence. A concatenation only
// matches when its right side starts exactly where its left side ends.
// When a gap is found, the whole concatenation is searched again starting
// from the end of the left match.
func Resolve(pattern Expr, text string) (types.Range, Captures, error) {
	switch p := pattern.(type) {
	case *StringLit:
		start := strings.Index(text, p.Value)
		if start < 0 {
			return types.Range{}, nil, wrapEval(ErrNotFound, "no match for %q", p.Value)
		}
		return types.NewRange(start, start+len(p.Value)), Captures{}, nil

	case *RegexLit:
		loc := p.Re.FindStringIndex(text)
		if loc == nil {
			return types.Range{}, nil, wrapEval(ErrNotFound, "no match for /%s/", p.Source)
		}
		return types.NewRange(loc[0], loc[1]), Captures{}, nil

	case *Concat:
		return resolveConcat(p, text)

	case *Binding:
		r, captures, err := Resolve(p.Inner, text)
		if err != nil {
			return types.Range{}, nil, err
		}
		// last write wins when a name is bound twice
		captures[p.Name] = text[r.Start:r.End]
		return r, captures, nil

	default:
		return types.Range{}, nil, wrapEval(ErrUnsupported, "%s is not a pattern", pattern)
	}
}

// resolveConcat slides the search window forward until both sides are
// adjacent or one of them stops matching.
func resolveConcat(p *Concat, text string) (types.Range, Captures, error) {
	base := 0
	for {
		window := text[base:]

		left, captures, err := Resolve(p.Left, window)
		if err != nil {
			return types.Range{}, nil, err
		}
		right, rightCaptures, err := Resolve(p.Right, window[left.End:])
		if err != nil {
			return types.Range{}, nil, err
		}

		if right.Start == 0 {
			for name, value := range rightCaptures {
				captures[name] = value
			}
			r := types.NewRange(left.Start, left.End+right.Len())
			return r.Shift(base), captures, nil
		}

		// An empty left match at the window start would retry forever.
		step := left.End
		if step == 0 {
			step = 1
		}
		if base+step > len(text) {
			return types.Range{}, nil, wrapEval(ErrNotFound, "no adjacent match for %s", p)
		}
		base += step
	}
}
