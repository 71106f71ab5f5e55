package script

import "github.com/gnolang/kyber/internal/types"

// value is a runtime value. It lives for a single evaluation.
type value interface {
	kind() string
}

// matchValue is a located range with the captures recorded while matching.
type matchValue struct {
	rng      types.Range
	captures Captures
}

type mutationsValue []types.Mutation

type textValue string

func (matchValue) kind() string     { return "match" }
func (mutationsValue) kind() string { return "mutations" }
func (textValue) kind() string      { return "text" }

// evaluator holds the per-request state of one Exec call.
type evaluator struct {
	buffer    string
	selection types.Range
	scope     map[string]value
}

// Exec runs the script against ctx. On success it returns every mutation
// emitted by expression statements, in order; on failure it returns none.
func (s *Script) Exec(ctx types.EditorContext) ([]types.Mutation, error) {
	e := &evaluator{
		buffer:    ctx.Buffer(),
		selection: ctx.Selection(),
		scope:     make(map[string]value),
	}

	mutations := []types.Mutation{}
	for _, item := range s.topLevels {
		switch item := item.(type) {
		case *Directive:
			// metadata only
		case *Assignment:
			v, err := e.eval(item.Value)
			if err != nil {
				return nil, err
			}
			e.scope[item.Name] = v
		case *ExprStmt:
			v, err := e.eval(item.X)
			if err != nil {
				return nil, err
			}
			if m, ok := v.(mutationsValue); ok {
				mutations = append(mutations, m...)
			}
		case *Import:
			return nil, wrapEval(ErrUnsupported, "%s: import", item.Position())
		case *ForLoop:
			return nil, wrapEval(ErrUnsupported, "%s: for loop", item.Position())
		default:
			return nil, wrapEval(ErrUnsupported, "%s", item)
		}
	}
	return mutations, nil
}

func (e *evaluator) eval(x Expr) (value, error) {
	switch x := x.(type) {
	case *StringLit:
		return textValue(x.Value), nil

	case *Ident:
		v, ok := e.scope[x.Name]
		if !ok {
			return nil, evalErrorf("unknown variable %q", x.Name)
		}
		return v, nil

	case *Concat:
		left, err := e.eval(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(x.Right)
		if err != nil {
			return nil, err
		}
		l, lok := left.(textValue)
		r, rok := right.(textValue)
		if !lok || !rok {
			return nil, evalErrorf("cannot concatenate %s and %s", left.kind(), right.kind())
		}
		return l + r, nil

	case *FnCall:
		if x.Name != "find" {
			return nil, evalErrorf("unknown function %q", x.Name)
		}
		if len(x.Args) == 0 {
			return nil, evalErrorf("too few arguments to find")
		}
		return e.find(x.Args[0])

	case *MethodCall:
		return e.callMethod(x)

	case *DotAccess:
		recv, err := e.eval(x.Receiver)
		if err != nil {
			return nil, err
		}
		m, ok := recv.(matchValue)
		if !ok {
			return nil, evalErrorf("cannot access %q on %s", x.Field, recv.kind())
		}
		text, ok := m.captures[x.Field]
		if !ok {
			return nil, evalErrorf("region does not have binding %q", x.Field)
		}
		return textValue(text), nil

	case *RegexLit, *Binding:
		return nil, evalErrorf("%s is only valid as a find pattern", x)

	default:
		return nil, wrapEval(ErrUnsupported, "%s", x)
	}
}

// find searches the buffer for the first match of pattern that covers the
// selection. Matches are visited left to right; the search stops as soon
// as a candidate starts past the selection.
func (e *evaluator) find(pattern Expr) (value, error) {
	offset := 0
	for {
		r, captures, err := Resolve(pattern, e.buffer[offset:])
		if err != nil {
			return nil, err
		}
		found := r.Shift(offset)

		if found.Start > e.selection.End {
			return nil, wrapEval(ErrNotFound, "no match at the selection")
		}
		if overlaps(found, e.selection) {
			return matchValue{rng: found, captures: captures}, nil
		}

		next := found.End
		if next <= offset {
			next = offset + 1
		}
		if next > len(e.buffer) {
			return nil, wrapEval(ErrNotFound, "no match at the selection")
		}
		offset = next
	}
}

func (e *evaluator) callMethod(x *MethodCall) (value, error) {
	recv, err := e.eval(x.Receiver)
	if err != nil {
		return nil, err
	}
	m, ok := recv.(matchValue)
	if !ok {
		return nil, evalErrorf("cannot call %q on %s", x.Name, recv.kind())
	}

	switch x.Name {
	case "replace":
		if len(x.Args) == 0 {
			return nil, evalErrorf("too few arguments to replace")
		}
		arg, err := e.eval(x.Args[0])
		if err != nil {
			return nil, err
		}
		text, ok := arg.(textValue)
		if !ok {
			return nil, evalErrorf("expected text, found %s", arg.kind())
		}
		mutations, err := replaceMutations(m.rng, e.selection, string(text))
		if err != nil {
			return nil, err
		}
		return mutationsValue(mutations), nil

	default:
		return nil, evalErrorf("unknown method %q", x.Name)
	}
}
