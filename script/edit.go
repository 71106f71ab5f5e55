package script

import "github.com/gnolang/kyber/internal/types"

// overlaps reports whether match covers selection: it must contain the
// selection and end after the selection starts, so a match ending exactly
// at an empty selection does not count.
func overlaps(match, selection types.Range) bool {
	return match.Start <= selection.Start &&
		match.End >= selection.End &&
		selection.Start < match.End
}

// synthesize computes how many forward deletes and backspaces, issued at
// the cursor, remove target. ok is false when target does not contain the
// selection.
func synthesize(target, selection types.Range) (deletes, backspaces int, ok bool) {
	deletes = target.End - selection.End
	backspaces = selection.Start - target.Start
	if deletes < 0 || backspaces < 0 {
		return 0, 0, false
	}
	// one character is still under a non-empty selection
	if !selection.IsEmpty() {
		deletes++
	}
	return deletes, backspaces, true
}

// replaceMutations emits the edit script replacing target with text.
func replaceMutations(target, selection types.Range, text string) ([]types.Mutation, error) {
	deletes, backspaces, ok := synthesize(target, selection)
	if !ok {
		return nil, wrapEval(ErrSynthesis, "range %s does not contain selection %s", target, selection)
	}

	mutations := make([]types.Mutation, 0, 3)
	if deletes > 0 {
		mutations = append(mutations, types.Delete(deletes))
	}
	if backspaces > 0 {
		mutations = append(mutations, types.Backspace(backspaces))
	}
	return append(mutations, types.Insert(text)), nil
}
